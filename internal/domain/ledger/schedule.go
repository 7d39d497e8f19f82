package ledger

import (
	"fmt"
	"time"

	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxInstallments bounds a payment schedule length
const MaxInstallments = 60

// InstallmentStatus is derived, never stored: it is recomputed from the
// plan's paid total on every read
type InstallmentStatus string

const (
	InstallmentStatusPaid    InstallmentStatus = "PAID"
	InstallmentStatusPartial InstallmentStatus = "PARTIAL"
	InstallmentStatusPending InstallmentStatus = "PENDING"
)

// String returns the string representation of InstallmentStatus
func (s InstallmentStatus) String() string {
	return string(s)
}

// Installment is one forecast share of a plan total. The amount and due
// date are frozen at forecast time; only the status is derived.
type Installment struct {
	shared.BaseEntity
	PlanID   uuid.UUID       `json:"plan_id"`
	Sequence int             `json:"sequence"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  time.Time       `json:"due_date"`
}

// GetAmountMoney returns the installment share as Money
func (i *Installment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(i.Amount)
}

// ForecastSchedule splits a plan's total into count equal monthly shares.
// Rounding residue lands on the last share so the shares always sum to
// the exact total. Due dates step one calendar month at a time from
// firstDueDate, clamping the day-of-month when the target month is
// shorter (Jan 31 -> Feb 28 -> Mar 28).
func ForecastSchedule(plan *TreatmentPlan, count int, firstDueDate time.Time) ([]*Installment, error) {
	if plan == nil {
		return nil, shared.NewValidationError("Schedule forecast requires a plan")
	}
	if !plan.Status.AcceptsEntries() {
		return nil, shared.NewStateError(fmt.Sprintf("Plan %s cannot be scheduled in %s status", plan.ID, plan.Status))
	}
	if count < 1 || count > MaxInstallments {
		return nil, shared.NewValidationError(fmt.Sprintf("Installment count must be between 1 and %d", MaxInstallments))
	}
	if firstDueDate.IsZero() {
		return nil, shared.NewValidationError("First due date is required")
	}
	if !plan.GetTotalMoney().IsPositive() {
		return nil, shared.NewValidationError("Cannot schedule a plan with a non-positive total")
	}

	shares, err := plan.GetTotalMoney().Split(count)
	if err != nil {
		return nil, err
	}

	firstDueDate = NormalizeCashDate(firstDueDate)
	installments := make([]*Installment, 0, count)
	for i, share := range shares {
		installments = append(installments, &Installment{
			BaseEntity: shared.NewBaseEntity(),
			PlanID:     plan.ID,
			Sequence:   i + 1,
			Amount:     share.Amount(),
			DueDate:    addMonthsClamped(firstDueDate, i),
		})
	}

	return installments, nil
}

// addMonthsClamped steps forward whole calendar months, clamping the day
// to the target month's length instead of letting it roll over.
func addMonthsClamped(date time.Time, months int) time.Time {
	if months == 0 {
		return date
	}
	year, month, day := date.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := lastDayOfMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ScheduleStatuses derives the status of each installment by allocating
// the plan's paid total across the schedule in sequence order. An
// installment is PAID once the running paid total covers the cumulative
// forecast through it, PENDING while the paid total has not reached into
// it, and PARTIAL in between. Only payments count; adjustments move the
// balance, not the schedule.
func ScheduleStatuses(installments []*Installment, totalPaid valueobject.Money) map[int]InstallmentStatus {
	statuses := make(map[int]InstallmentStatus, len(installments))
	paid := totalPaid.Amount()
	cumulative := decimal.Zero
	for _, inst := range installments {
		before := cumulative
		cumulative = cumulative.Add(inst.Amount)
		switch {
		case paid.GreaterThanOrEqual(cumulative):
			statuses[inst.Sequence] = InstallmentStatusPaid
		case paid.LessThanOrEqual(before):
			statuses[inst.Sequence] = InstallmentStatusPending
		default:
			statuses[inst.Sequence] = InstallmentStatusPartial
		}
	}
	return statuses
}
