package ledger

import (
	"context"
	"testing"
	"time"

	domainledger "github.com/echodent/backend/internal/domain/ledger"
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScheduleService_GenerateSchedule(t *testing.T) {
	f := newFixture()
	service := NewScheduleService(f.scope, f.notifier)
	plan := approvedPlanFixture(t, "300.00")
	actorID := uuid.New()

	f.plans.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)
	f.installments.On("ReplaceForPlan", mock.Anything, plan.ID, mock.AnythingOfType("[]*ledger.Installment")).Return(nil)
	f.notifier.On("Notify", mock.Anything, NotifyTypeFinance, mock.Anything, actorID, &plan.PatientID).Return()

	installments, err := service.GenerateSchedule(context.Background(), actorID, plan.ID, 3,
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, installments, 3)
	for _, inst := range installments {
		assert.Equal(t, "100.00", inst.Amount.StringFixed(2))
	}
	f.installments.AssertExpectations(t)
}

func TestScheduleService_GenerateSchedule_InvalidCountSkipsReplace(t *testing.T) {
	f := newFixture()
	service := NewScheduleService(f.scope, f.notifier)
	plan := approvedPlanFixture(t, "300.00")

	f.plans.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)

	_, err := service.GenerateSchedule(context.Background(), uuid.New(), plan.ID, 0, time.Now())

	require.Error(t, err)
	assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeValidation))
	f.installments.AssertNotCalled(t, "ReplaceForPlan", mock.Anything, mock.Anything, mock.Anything)
}

// Mirrors the documented flow: 300 over 3 installments with 100 paid
// reads as Paid, Pending, Pending.
func TestScheduleService_GetSchedule_DerivedStatuses(t *testing.T) {
	f := newFixture()
	service := NewScheduleService(f.scope, f.notifier)
	plan := approvedPlanFixture(t, "300.00")

	installments, err := domainledger.ForecastSchedule(plan, 3, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f.plans.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)
	f.installments.On("FindByPlan", mock.Anything, plan.ID).Return(installments, nil)
	f.entries.On("SumPaymentsByPlan", mock.Anything, plan.ID).Return(valueobject.MustMoneyBRL("100.00"), nil)

	schedule, err := service.GetSchedule(context.Background(), plan.ID)

	require.NoError(t, err)
	require.Len(t, schedule, 3)
	assert.Equal(t, domainledger.InstallmentStatusPaid, schedule[0].Status)
	assert.Equal(t, domainledger.InstallmentStatusPending, schedule[1].Status)
	assert.Equal(t, domainledger.InstallmentStatusPending, schedule[2].Status)
}

func TestScheduleService_GetSchedule_PlanNotFound(t *testing.T) {
	f := newFixture()
	service := NewScheduleService(f.scope, f.notifier)
	planID := uuid.New()

	f.plans.On("FindByID", mock.Anything, planID).Return(nil, shared.NewNotFoundError("no such plan"))

	_, err := service.GetSchedule(context.Background(), planID)

	require.Error(t, err)
	assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeNotFound))
}
