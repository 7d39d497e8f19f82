package ledger

import (
	"context"
	"time"

	"github.com/echodent/backend/internal/domain/catalog"
	"github.com/echodent/backend/internal/domain/ledger"
	"github.com/echodent/backend/internal/domain/ledger/acl"
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.TreatmentPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.TreatmentPlan), args.Error(1)
}

func (m *MockPlanRepository) FindByPatient(ctx context.Context, patientID uuid.UUID, filter shared.Filter) (*shared.Paginated[*ledger.TreatmentPlan], error) {
	args := m.Called(ctx, patientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*ledger.TreatmentPlan]), args.Error(1)
}

func (m *MockPlanRepository) FindByStatus(ctx context.Context, status ledger.PlanStatus, filter shared.Filter) (*shared.Paginated[*ledger.TreatmentPlan], error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*ledger.TreatmentPlan]), args.Error(1)
}

func (m *MockPlanRepository) Save(ctx context.Context, plan *ledger.TreatmentPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.LedgerEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) FindByPlan(ctx context.Context, planID uuid.UUID) ([]*ledger.LedgerEntry, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) FindByDate(ctx context.Context, date time.Time) ([]*ledger.LedgerEntry, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) FindReversalOf(ctx context.Context, entryID uuid.UUID) (*ledger.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) Append(ctx context.Context, entry *ledger.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) SumPaymentsByPlan(ctx context.Context, planID uuid.UUID) (valueobject.Money, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockEntryRepository) SumPaymentsByDate(ctx context.Context, date time.Time) (valueobject.Money, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) FindByPlan(ctx context.Context, planID uuid.UUID) ([]*ledger.Installment, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) ReplaceForPlan(ctx context.Context, planID uuid.UUID, installments []*ledger.Installment) error {
	args := m.Called(ctx, planID, installments)
	return args.Error(0)
}

type MockCashDayRepository struct {
	mock.Mock
}

func (m *MockCashDayRepository) FindByDate(ctx context.Context, date time.Time) (*ledger.CashDay, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CashDay), args.Error(1)
}

func (m *MockCashDayRepository) FindRange(ctx context.Context, from, to time.Time, filter shared.Filter) (*shared.Paginated[*ledger.CashDay], error) {
	args := m.Called(ctx, from, to, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*ledger.CashDay]), args.Error(1)
}

func (m *MockCashDayRepository) Save(ctx context.Context, day *ledger.CashDay) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

type MockProcedureRepository struct {
	mock.Mock
}

func (m *MockProcedureRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Procedure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Procedure), args.Error(1)
}

func (m *MockProcedureRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*catalog.Procedure], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*catalog.Procedure]), args.Error(1)
}

func (m *MockProcedureRepository) Save(ctx context.Context, procedure *catalog.Procedure) error {
	args := m.Called(ctx, procedure)
	return args.Error(0)
}

func (m *MockProcedureRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockStaffDirectory struct {
	mock.Mock
}

func (m *MockStaffDirectory) FindDentist(ctx context.Context, id uuid.UUID) (*acl.StaffRef, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*acl.StaffRef), args.Error(1)
}

type MockPatientDirectory struct {
	mock.Mock
}

func (m *MockPatientDirectory) FindPatient(ctx context.Context, id uuid.UUID) (*acl.PatientRef, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*acl.PatientRef), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, eventType, description string, actorID uuid.UUID, subjectID *uuid.UUID) {
	m.Called(ctx, eventType, description, actorID, subjectID)
}

// fixture bundles the standard mock set behind a no-op transaction scope
type fixture struct {
	plans        *MockPlanRepository
	entries      *MockEntryRepository
	installments *MockInstallmentRepository
	cashDays     *MockCashDayRepository
	procedures   *MockProcedureRepository
	staff        *MockStaffDirectory
	patients     *MockPatientDirectory
	notifier     *MockNotifier
	scope        TransactionScope
}

func newFixture() *fixture {
	f := &fixture{
		plans:        new(MockPlanRepository),
		entries:      new(MockEntryRepository),
		installments: new(MockInstallmentRepository),
		cashDays:     new(MockCashDayRepository),
		procedures:   new(MockProcedureRepository),
		staff:        new(MockStaffDirectory),
		patients:     new(MockPatientDirectory),
		notifier:     new(MockNotifier),
	}
	f.scope = NewNoOpTransactionScope(TransactionalRepositories{
		Plans:        f.plans,
		Entries:      f.entries,
		Installments: f.installments,
		CashDays:     f.cashDays,
		Procedures:   f.procedures,
	})
	return f
}
