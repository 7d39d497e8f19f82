package ledger

import (
	"fmt"
	"time"

	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashDayStatus represents the closing status of one business day
type CashDayStatus string

const (
	CashDayStatusOpen   CashDayStatus = "OPEN"
	CashDayStatusClosed CashDayStatus = "CLOSED"
)

// IsValid checks if the status is a valid CashDayStatus
func (s CashDayStatus) IsValid() bool {
	return s == CashDayStatusOpen || s == CashDayStatusClosed
}

// String returns the string representation of CashDayStatus
func (s CashDayStatus) String() string {
	return string(s)
}

// NormalizeCashDate truncates a timestamp to its UTC calendar date.
// Cash days and entry dates are keyed on this normal form.
func NormalizeCashDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CashDay is the closing record for one calendar date. Days are implicitly
// open until a closing record exists; closing is one-way and freezes the
// reconciled payment total for that date.
type CashDay struct {
	shared.AuditedAggregateRoot
	Date         time.Time       `json:"date"`
	Status       CashDayStatus   `json:"status"`
	ClosedTotal  decimal.Decimal `json:"closed_total"`
	ClosedAt     *time.Time      `json:"closed_at"`
	ClosedBy     *uuid.UUID      `json:"closed_by"`
	ClosingNotes string          `json:"closing_notes"`
}

// NewCashDay creates an open closing record for the given date
func NewCashDay(createdBy uuid.UUID, date time.Time) (*CashDay, error) {
	if date.IsZero() {
		return nil, shared.NewValidationError("Cash day date is required")
	}

	return &CashDay{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Date:                 NormalizeCashDate(date),
		Status:               CashDayStatusOpen,
		ClosedTotal:          decimal.Zero,
	}, nil
}

// Close seals the day, freezing the reconciled payment total. Closing an
// already closed day fails with ALREADY_CLOSED; there is no reopen.
func (d *CashDay) Close(closedBy uuid.UUID, reconciledTotal valueobject.Money, notes string) error {
	if d.Status == CashDayStatusClosed {
		return shared.NewAlreadyClosedError(fmt.Sprintf("Cash day %s is already closed", d.Date.Format("2006-01-02")))
	}

	now := time.Now()
	d.Status = CashDayStatusClosed
	d.ClosedTotal = reconciledTotal.Amount()
	d.ClosedAt = &now
	if closedBy != uuid.Nil {
		d.ClosedBy = &closedBy
	}
	d.ClosingNotes = notes
	d.UpdatedAt = now
	d.IncrementVersion()

	d.AddDomainEvent(NewCashDayClosedEvent(d))

	return nil
}

// IsClosed returns true once the day has been sealed
func (d *CashDay) IsClosed() bool {
	return d.Status == CashDayStatusClosed
}

// GetClosedTotalMoney returns the frozen reconciled total as Money
func (d *CashDay) GetClosedTotalMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(d.ClosedTotal)
}
