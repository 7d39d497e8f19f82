package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryKind discriminates the two movement types on a plan's ledger
type EntryKind string

const (
	EntryKindPayment    EntryKind = "PAYMENT"    // Money received; reduces the balance
	EntryKindAdjustment EntryKind = "ADJUSTMENT" // Signed correction to the effective total
)

// IsValid checks if the kind is a valid EntryKind
func (k EntryKind) IsValid() bool {
	return k == EntryKindPayment || k == EntryKindAdjustment
}

// String returns the string representation of EntryKind
func (k EntryKind) String() string {
	return string(k)
}

// PaymentMethod enumerates how a payment was received
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodPix      PaymentMethod = "PIX"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodCheck    PaymentMethod = "CHECK"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodPix, PaymentMethodTransfer, PaymentMethodCheck:
		return true
	}
	return false
}

// reversalPrefix tags the description of every reversal entry with a
// back-reference to the entry it voids.
const reversalPrefix = "Estorno ref. lanc. %s"

// LedgerEntry is one immutable row on a plan's financial ledger.
// Entries are never updated or deleted after commit; corrections happen
// through compensating reversal entries.
type LedgerEntry struct {
	shared.AuditedAggregateRoot
	PlanID          uuid.UUID       `json:"plan_id"`
	Kind            EntryKind       `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	EntryDate       time.Time       `json:"entry_date"`
	Description     string          `json:"description"`
	PaymentMethod   *PaymentMethod  `json:"payment_method"`
	InstallmentSeq  *int            `json:"installment_seq"`
	ReversedEntryID *uuid.UUID      `json:"reversed_entry_id"`
}

// NewPayment records money received against a plan.
func NewPayment(createdBy uuid.UUID, plan *TreatmentPlan, amount valueobject.Money, method PaymentMethod, entryDate time.Time, description string, installmentSeq *int) (*LedgerEntry, error) {
	if plan == nil {
		return nil, shared.NewValidationError("Payment requires a plan")
	}
	if !plan.Status.AcceptsEntries() {
		return nil, shared.NewStateError(fmt.Sprintf("Plan %s does not accept entries in %s status", plan.ID, plan.Status))
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown payment method: %s", method))
	}
	if installmentSeq != nil && *installmentSeq < 1 {
		return nil, shared.NewValidationError("Installment sequence must be positive")
	}

	entry := &LedgerEntry{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		PlanID:               plan.ID,
		Kind:                 EntryKindPayment,
		Amount:               amount.Amount(),
		EntryDate:            NormalizeCashDate(entryDate),
		Description:          strings.TrimSpace(description),
		PaymentMethod:        &method,
		InstallmentSeq:       installmentSeq,
	}

	entry.AddDomainEvent(NewEntryRecordedEvent(entry))

	return entry, nil
}

// NewAdjustment records a signed correction to the plan's effective total.
// A written reason is mandatory; adjustments are the only correction path
// once a plan is sealed.
func NewAdjustment(createdBy uuid.UUID, plan *TreatmentPlan, amount valueobject.Money, entryDate time.Time, reason string) (*LedgerEntry, error) {
	if plan == nil {
		return nil, shared.NewValidationError("Adjustment requires a plan")
	}
	if !plan.Status.AcceptsEntries() {
		return nil, shared.NewStateError(fmt.Sprintf("Plan %s does not accept entries in %s status", plan.ID, plan.Status))
	}
	if amount.IsZero() {
		return nil, shared.NewValidationError("Adjustment amount cannot be zero")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, shared.NewValidationError("Adjustment reason is required")
	}

	entry := &LedgerEntry{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		PlanID:               plan.ID,
		Kind:                 EntryKindAdjustment,
		Amount:               amount.Amount(),
		EntryDate:            NormalizeCashDate(entryDate),
		Description:          reason,
	}

	entry.AddDomainEvent(NewEntryRecordedEvent(entry))

	return entry, nil
}

// NewReversal creates the compensating entry that voids an original entry:
// same kind, negated amount, back-reference to the original. Timestamped
// today, not on the original's date, so the reversal lands in the current
// cash day.
func NewReversal(createdBy uuid.UUID, original *LedgerEntry, reason string) (*LedgerEntry, error) {
	if original == nil {
		return nil, shared.NewValidationError("Reversal requires the original entry")
	}
	if original.IsReversal() {
		return nil, shared.NewValidationError(fmt.Sprintf("Entry %s is itself a reversal and cannot be reversed", original.ID))
	}
	reason = strings.TrimSpace(reason)

	description := fmt.Sprintf(reversalPrefix, original.ID)
	if reason != "" {
		description = fmt.Sprintf("%s: %s", description, reason)
	}

	originalID := original.ID
	entry := &LedgerEntry{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		PlanID:               original.PlanID,
		Kind:                 original.Kind,
		Amount:               original.Amount.Neg(),
		EntryDate:            NormalizeCashDate(time.Now()),
		Description:          description,
		PaymentMethod:        original.PaymentMethod,
		InstallmentSeq:       original.InstallmentSeq,
		ReversedEntryID:      &originalID,
	}

	entry.AddDomainEvent(NewEntryReversedEvent(entry, original))

	return entry, nil
}

// IsReversal returns true if this entry voids another entry
func (e *LedgerEntry) IsReversal() bool {
	return e.ReversedEntryID != nil
}

// IsPayment returns true for payment entries
func (e *LedgerEntry) IsPayment() bool {
	return e.Kind == EntryKindPayment
}

// IsAdjustment returns true for adjustment entries
func (e *LedgerEntry) IsAdjustment() bool {
	return e.Kind == EntryKindAdjustment
}

// GetAmountMoney returns the signed amount as Money
func (e *LedgerEntry) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(e.Amount)
}
