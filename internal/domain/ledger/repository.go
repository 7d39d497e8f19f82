package ledger

import (
	"context"
	"time"

	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// TreatmentPlanRepository persists treatment plan aggregates
type TreatmentPlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TreatmentPlan, error)
	FindByPatient(ctx context.Context, patientID uuid.UUID, filter shared.Filter) (*shared.Paginated[*TreatmentPlan], error)
	FindByStatus(ctx context.Context, status PlanStatus, filter shared.Filter) (*shared.Paginated[*TreatmentPlan], error)
	Save(ctx context.Context, plan *TreatmentPlan) error
	Count(ctx context.Context) (int64, error)
}

// LedgerEntryRepository persists the append-only entry log. There is no
// update or delete: corrections are new reversal entries.
type LedgerEntryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerEntry, error)
	FindByPlan(ctx context.Context, planID uuid.UUID) ([]*LedgerEntry, error)
	FindByDate(ctx context.Context, date time.Time) ([]*LedgerEntry, error)
	// FindReversalOf returns the entry that voids the given entry, or
	// shared.ErrNotFound when it has not been reversed.
	FindReversalOf(ctx context.Context, entryID uuid.UUID) (*LedgerEntry, error)
	Append(ctx context.Context, entry *LedgerEntry) error
	// SumPaymentsByPlan totals payment entries (reversals included) per plan
	SumPaymentsByPlan(ctx context.Context, planID uuid.UUID) (valueobject.Money, error)
	// SumPaymentsByDate totals payment entries dated on the given cash day
	SumPaymentsByDate(ctx context.Context, date time.Time) (valueobject.Money, error)
}

// InstallmentRepository persists forecast schedules
type InstallmentRepository interface {
	FindByPlan(ctx context.Context, planID uuid.UUID) ([]*Installment, error)
	ReplaceForPlan(ctx context.Context, planID uuid.UUID, installments []*Installment) error
}

// CashDayRepository persists day closing records, keyed by calendar date
type CashDayRepository interface {
	// FindByDate returns the closing record for a date, or
	// shared.ErrNotFound when the day was never closed.
	FindByDate(ctx context.Context, date time.Time) (*CashDay, error)
	FindRange(ctx context.Context, from, to time.Time, filter shared.Filter) (*shared.Paginated[*CashDay], error)
	Save(ctx context.Context, day *CashDay) error
}
