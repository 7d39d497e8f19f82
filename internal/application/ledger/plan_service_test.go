package ledger

import (
	"context"
	"testing"

	"github.com/echodent/backend/internal/domain/catalog"
	domainledger "github.com/echodent/backend/internal/domain/ledger"
	"github.com/echodent/backend/internal/domain/ledger/acl"
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedProcedure(t *testing.T, name, price string) *catalog.Procedure {
	t.Helper()
	procedure, err := catalog.NewProcedure(uuid.New(), name, valueobject.MustMoneyBRL(price))
	require.NoError(t, err)
	return procedure
}

func approvedPlanFixture(t *testing.T, total string) *domainledger.TreatmentPlan {
	t.Helper()
	line, err := domainledger.NewFreeFormLine("Tratamento", valueobject.MustMoneyBRL(total), "")
	require.NoError(t, err)
	plan, err := domainledger.NewTreatmentPlan(uuid.New(), uuid.New(), nil, []domainledger.PlanLine{line})
	require.NoError(t, err)
	require.NoError(t, plan.Approve(uuid.New(), valueobject.ZeroBRL()))
	return plan
}

func TestPlanService_CreatePlan_FreezesCatalogSnapshot(t *testing.T) {
	f := newFixture()
	service := NewPlanService(f.scope, f.staff, f.patients, f.notifier)

	actorID := uuid.New()
	patientID := uuid.New()
	procedure := seedProcedure(t, "Limpeza", "120.00")

	f.patients.On("FindPatient", mock.Anything, patientID).Return(&acl.PatientRef{ID: patientID, Name: "Maria"}, nil)
	f.procedures.On("FindByID", mock.Anything, procedure.ID).Return(procedure, nil)
	f.plans.On("Save", mock.Anything, mock.AnythingOfType("*ledger.TreatmentPlan")).Return(nil)
	f.notifier.On("Notify", mock.Anything, NotifyTypePlan, mock.AnythingOfType("string"), actorID, mock.Anything).Return()

	plan, err := service.CreatePlan(context.Background(), CreatePlanRequest{
		ActorID:   actorID,
		PatientID: patientID,
		Lines:     []PlanLineRequest{{ProcedureID: &procedure.ID, Name: procedure.Name}},
	})

	require.NoError(t, err)
	assert.Equal(t, domainledger.PlanStatusProposed, plan.Status)
	require.Len(t, plan.Lines, 1)
	assert.Equal(t, "Limpeza", plan.Lines[0].NameSnapshot)
	assert.Equal(t, "120.00", plan.Lines[0].Price.StringFixed(2))

	// repricing the catalog afterwards must not touch the frozen line
	require.NoError(t, procedure.Reprice(valueobject.MustMoneyBRL("999.00")))
	assert.Equal(t, "120.00", plan.Lines[0].Price.StringFixed(2))

	f.plans.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestPlanService_CreatePlan_PriceOverrideAndFreeForm(t *testing.T) {
	f := newFixture()
	service := NewPlanService(f.scope, f.staff, f.patients, f.notifier)

	patientID := uuid.New()
	procedure := seedProcedure(t, "Canal", "800.00")
	override := decimal.RequireFromString("650.00")
	freeForm := decimal.RequireFromString("90.00")

	f.patients.On("FindPatient", mock.Anything, patientID).Return(&acl.PatientRef{ID: patientID}, nil)
	f.procedures.On("FindByID", mock.Anything, procedure.ID).Return(procedure, nil)
	f.plans.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	plan, err := service.CreatePlan(context.Background(), CreatePlanRequest{
		ActorID:   uuid.New(),
		PatientID: patientID,
		Lines: []PlanLineRequest{
			{ProcedureID: &procedure.ID, PriceOverride: &override},
			{Name: "Taxa de urgência", PriceOverride: &freeForm},
		},
	})

	require.NoError(t, err)
	require.Len(t, plan.Lines, 2)
	assert.Equal(t, "650.00", plan.Lines[0].Price.StringFixed(2))
	assert.Nil(t, plan.Lines[1].ProcedureID)
	assert.Equal(t, "740.00", plan.Subtotal.StringFixed(2))
}

func TestPlanService_CreatePlan_NotFoundPaths(t *testing.T) {
	t.Run("unknown patient", func(t *testing.T) {
		f := newFixture()
		service := NewPlanService(f.scope, f.staff, f.patients, f.notifier)
		patientID := uuid.New()

		f.patients.On("FindPatient", mock.Anything, patientID).Return(nil, shared.NewNotFoundError("no such patient"))

		_, err := service.CreatePlan(context.Background(), CreatePlanRequest{
			ActorID:   uuid.New(),
			PatientID: patientID,
			Lines:     []PlanLineRequest{{Name: "Avulso"}},
		})
		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeNotFound))
	})

	t.Run("unknown dentist", func(t *testing.T) {
		f := newFixture()
		service := NewPlanService(f.scope, f.staff, f.patients, f.notifier)
		patientID := uuid.New()
		dentistID := uuid.New()

		f.patients.On("FindPatient", mock.Anything, patientID).Return(&acl.PatientRef{ID: patientID}, nil)
		f.staff.On("FindDentist", mock.Anything, dentistID).Return(nil, shared.NewNotFoundError("no such dentist"))

		_, err := service.CreatePlan(context.Background(), CreatePlanRequest{
			ActorID:   uuid.New(),
			PatientID: patientID,
			DentistID: &dentistID,
			Lines:     []PlanLineRequest{{Name: "Avulso"}},
		})
		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeNotFound))
	})

	t.Run("unknown procedure", func(t *testing.T) {
		f := newFixture()
		service := NewPlanService(f.scope, f.staff, f.patients, f.notifier)
		patientID := uuid.New()
		procedureID := uuid.New()

		f.patients.On("FindPatient", mock.Anything, patientID).Return(&acl.PatientRef{ID: patientID}, nil)
		f.procedures.On("FindByID", mock.Anything, procedureID).Return(nil, shared.NewNotFoundError("no such procedure"))

		_, err := service.CreatePlan(context.Background(), CreatePlanRequest{
			ActorID:   uuid.New(),
			PatientID: patientID,
			Lines:     []PlanLineRequest{{ProcedureID: &procedureID}},
		})
		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeNotFound))
		f.plans.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPlanService_ApprovePlan(t *testing.T) {
	f := newFixture()
	service := NewPlanService(f.scope, f.staff, f.patients, f.notifier)

	line, err := domainledger.NewFreeFormLine("Tratamento", valueobject.MustMoneyBRL("300.00"), "")
	require.NoError(t, err)
	plan, err := domainledger.NewTreatmentPlan(uuid.New(), uuid.New(), nil, []domainledger.PlanLine{line})
	require.NoError(t, err)

	f.plans.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)
	f.plans.On("Save", mock.Anything, plan).Return(nil)
	f.notifier.On("Notify", mock.Anything, NotifyTypePlan, mock.Anything, mock.Anything, mock.Anything).Return()

	approved, err := service.ApprovePlan(context.Background(), uuid.New(), plan.ID, valueobject.MustMoneyBRL("50.00"))

	require.NoError(t, err)
	assert.Equal(t, domainledger.PlanStatusApproved, approved.Status)
	assert.Equal(t, "250.00", approved.Total.StringFixed(2))
}

func TestPlanService_ApprovePlan_StateErrorSkipsSave(t *testing.T) {
	f := newFixture()
	service := NewPlanService(f.scope, f.staff, f.patients, f.notifier)
	plan := approvedPlanFixture(t, "300.00")

	f.plans.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)

	_, err := service.ApprovePlan(context.Background(), uuid.New(), plan.ID, valueobject.ZeroBRL())

	require.Error(t, err)
	assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeInvalidState))
	f.plans.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPlanService_GetPlan_ComputesBalance(t *testing.T) {
	f := newFixture()
	service := NewPlanService(f.scope, f.staff, f.patients, f.notifier)

	plan := approvedPlanFixture(t, "300.00")
	actor := uuid.New()
	payment, err := domainledger.NewPayment(actor, plan, valueobject.MustMoneyBRL("100.00"), domainledger.PaymentMethodPix, plan.CreatedAt, "", nil)
	require.NoError(t, err)
	adjustment, err := domainledger.NewAdjustment(actor, plan, valueobject.MustMoneyBRL("-50.00"), plan.CreatedAt, "Cortesia")
	require.NoError(t, err)

	f.plans.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)
	f.entries.On("FindByPlan", mock.Anything, plan.ID).Return([]*domainledger.LedgerEntry{payment, adjustment}, nil)

	detail, err := service.GetPlan(context.Background(), plan.ID)

	require.NoError(t, err)
	assert.Equal(t, "150.00", detail.Balance.BalanceDue.StringFixed(2))
}

func TestPlanService_CreateStandaloneReceipt(t *testing.T) {
	f := newFixture()
	service := NewPlanService(f.scope, f.staff, f.patients, f.notifier)

	actorID := uuid.New()
	patientID := uuid.New()

	f.patients.On("FindPatient", mock.Anything, patientID).Return(&acl.PatientRef{ID: patientID}, nil)
	f.plans.On("Save", mock.Anything, mock.AnythingOfType("*ledger.TreatmentPlan")).Return(nil)

	var recorded *domainledger.LedgerEntry
	f.entries.On("Append", mock.Anything, mock.AnythingOfType("*ledger.LedgerEntry")).
		Run(func(args mock.Arguments) { recorded = args.Get(1).(*domainledger.LedgerEntry) }).
		Return(nil)
	f.notifier.On("Notify", mock.Anything, NotifyTypeFinance, mock.Anything, actorID, mock.Anything).Return()

	plan, err := service.CreateStandaloneReceipt(context.Background(), actorID, patientID, nil,
		valueobject.MustMoneyBRL("150.00"), "Radiografia panorâmica")

	require.NoError(t, err)
	assert.Equal(t, domainledger.PlanStatusCompleted, plan.Status)
	require.NotNil(t, recorded)
	assert.Equal(t, plan.ID, recorded.PlanID)
	assert.Equal(t, "150.00", recorded.Amount.StringFixed(2))

	// phantom plan plus its payment settle to zero
	balance := domainledger.ComputeBalance(plan, []*domainledger.LedgerEntry{recorded})
	assert.Equal(t, "0.00", balance.BalanceDue.StringFixed(2))
}

func TestPlanService_GetPatientBalance(t *testing.T) {
	f := newFixture()
	service := NewPlanService(f.scope, f.staff, f.patients, f.notifier)

	patientID := uuid.New()
	approved := approvedPlanFixture(t, "300.00")
	proposedLine, err := domainledger.NewFreeFormLine("Orçamento", valueobject.MustMoneyBRL("500.00"), "")
	require.NoError(t, err)
	proposed, err := domainledger.NewTreatmentPlan(uuid.New(), patientID, nil, []domainledger.PlanLine{proposedLine})
	require.NoError(t, err)

	payment, err := domainledger.NewPayment(uuid.New(), approved, valueobject.MustMoneyBRL("100.00"), domainledger.PaymentMethodCash, approved.CreatedAt, "", nil)
	require.NoError(t, err)

	page := shared.NewPaginated([]*domainledger.TreatmentPlan{approved, proposed}, 2, 1, -1)
	f.patients.On("FindPatient", mock.Anything, patientID).Return(&acl.PatientRef{ID: patientID}, nil)
	f.plans.On("FindByPatient", mock.Anything, patientID, mock.Anything).Return(&page, nil)
	f.entries.On("FindByPlan", mock.Anything, approved.ID).Return([]*domainledger.LedgerEntry{payment}, nil)

	balance, err := service.GetPatientBalance(context.Background(), patientID)

	require.NoError(t, err)
	// proposed quotes do not owe anything
	assert.Equal(t, "200.00", balance.StringFixed(2))
	f.entries.AssertNotCalled(t, "FindByPlan", mock.Anything, proposed.ID)
}
