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

// PlanStatus represents the lifecycle status of a treatment plan
type PlanStatus string

const (
	PlanStatusProposed  PlanStatus = "PROPOSED"  // Quote, fully editable
	PlanStatusApproved  PlanStatus = "APPROVED"  // Sealed, accepts ledger entries
	PlanStatusCompleted PlanStatus = "COMPLETED" // Treatment finished, still accepts entries
	PlanStatusCancelled PlanStatus = "CANCELLED" // Abandoned quote or plan
)

// IsValid checks if the status is a valid PlanStatus
func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanStatusProposed, PlanStatusApproved, PlanStatusCompleted, PlanStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PlanStatus
func (s PlanStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the plan is in a terminal state
func (s PlanStatus) IsTerminal() bool {
	return s == PlanStatusCompleted || s == PlanStatusCancelled
}

// CanApprove returns true if the plan can be approved in this status
func (s PlanStatus) CanApprove() bool {
	return s == PlanStatusProposed
}

// CanEditLines returns true if line items may still be changed
func (s PlanStatus) CanEditLines() bool {
	return s == PlanStatusProposed
}

// CanCancel returns true if the plan can be cancelled in this status
func (s PlanStatus) CanCancel() bool {
	return s == PlanStatusProposed || s == PlanStatusApproved
}

// AcceptsEntries returns true if ledger entries may be recorded against the plan
func (s PlanStatus) AcceptsEntries() bool {
	return s == PlanStatusApproved || s == PlanStatusCompleted
}

// PlanLine is a frozen snapshot of one catalog procedure on a plan.
// Name and price are captured at creation time and never resynchronized
// from the catalog.
type PlanLine struct {
	ID            uuid.UUID       `json:"id"`
	PlanID        uuid.UUID       `json:"plan_id"`
	ProcedureID   *uuid.UUID      `json:"procedure_id"`
	NameSnapshot  string          `json:"name_snapshot"`
	Price         decimal.Decimal `json:"price"`
	ToothFaceNote string          `json:"tooth_face_note"`
}

// NewPlanLine creates a plan line freezing the given catalog name and price
func NewPlanLine(procedureID uuid.UUID, name string, price valueobject.Money, toothFaceNote string) (PlanLine, error) {
	if procedureID == uuid.Nil {
		return PlanLine{}, shared.NewValidationError("Plan line requires a procedure reference")
	}
	line, err := NewFreeFormLine(name, price, toothFaceNote)
	if err != nil {
		return PlanLine{}, err
	}
	line.ProcedureID = &procedureID
	return line, nil
}

// NewFreeFormLine creates a plan line for a charge with no catalog item
// behind it, priced explicitly.
func NewFreeFormLine(name string, price valueobject.Money, toothFaceNote string) (PlanLine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return PlanLine{}, shared.NewValidationError("Plan line requires a name")
	}
	if price.IsNegative() {
		return PlanLine{}, shared.NewValidationError("Plan line price cannot be negative")
	}
	return PlanLine{
		ID:            uuid.New(),
		NameSnapshot:  name,
		Price:         price.Amount(),
		ToothFaceNote: strings.TrimSpace(toothFaceNote),
	}, nil
}

// GetPriceMoney returns the frozen price as Money
func (l *PlanLine) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(l.Price)
}

// TreatmentPlan is the billing aggregate for one patient treatment.
// Totals are set from the frozen line prices; once approved, the total
// only moves through recorded ledger adjustments, never plan mutation.
type TreatmentPlan struct {
	shared.AuditedAggregateRoot
	PatientID    uuid.UUID       `json:"patient_id"`
	DentistID    *uuid.UUID      `json:"dentist_id"`
	Status       PlanStatus      `json:"status"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	Lines        []PlanLine      `json:"lines"`
	ApprovedAt   *time.Time      `json:"approved_at"`
	ApprovedBy   *uuid.UUID      `json:"approved_by"`
	CancelledAt  *time.Time      `json:"cancelled_at"`
	CancelReason string          `json:"cancel_reason"`
}

// NewTreatmentPlan creates a plan in PROPOSED state from frozen lines.
// The caller is responsible for having resolved dentistID against the
// identity store and each line against the catalog beforehand.
func NewTreatmentPlan(createdBy, patientID uuid.UUID, dentistID *uuid.UUID, lines []PlanLine) (*TreatmentPlan, error) {
	if patientID == uuid.Nil {
		return nil, shared.NewValidationError("Patient ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("A plan requires at least one line item")
	}

	plan := &TreatmentPlan{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		PatientID:            patientID,
		DentistID:            dentistID,
		Status:               PlanStatusProposed,
		Discount:             decimal.Zero,
		Lines:                make([]PlanLine, 0, len(lines)),
	}
	plan.adoptLines(lines)
	plan.recomputeTotals()

	plan.AddDomainEvent(NewPlanCreatedEvent(plan))

	return plan, nil
}

// NewSettledPlan creates a phantom COMPLETED plan for a standalone receipt.
// The matching payment entry must be recorded in the same transaction so
// the patient balance stays zero.
func NewSettledPlan(createdBy, patientID uuid.UUID, dentistID *uuid.UUID, amount valueobject.Money, description string) (*TreatmentPlan, error) {
	if patientID == uuid.Nil {
		return nil, shared.NewValidationError("Patient ID cannot be empty")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewValidationError("A standalone receipt requires a description")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("A standalone receipt requires a positive amount")
	}

	plan := &TreatmentPlan{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		PatientID:            patientID,
		DentistID:            dentistID,
		Status:               PlanStatusCompleted,
		Subtotal:             amount.Amount(),
		Discount:             decimal.Zero,
		Total:                amount.Amount(),
		Lines: []PlanLine{{
			ID:           uuid.New(),
			NameSnapshot: description,
			Price:        amount.Amount(),
		}},
	}

	plan.AddDomainEvent(NewPlanCreatedEvent(plan))

	return plan, nil
}

// Approve seals the plan, applying the discount and fixing the total.
// One-way: corrections after approval go through ledger adjustments.
func (p *TreatmentPlan) Approve(approvedBy uuid.UUID, discount valueobject.Money) error {
	if !p.Status.CanApprove() {
		return shared.NewStateError(fmt.Sprintf("Only PROPOSED plans can be approved; plan %s is %s", p.ID, p.Status))
	}
	if discount.IsNegative() {
		return shared.NewValidationError("Discount cannot be negative")
	}
	if discount.Amount().GreaterThan(p.Subtotal) {
		return shared.NewValidationError(fmt.Sprintf("Discount %s exceeds the plan subtotal %s", discount.StringFixed(2), p.Subtotal.StringFixed(2)))
	}

	now := time.Now()
	p.Discount = discount.Amount()
	p.Total = p.Subtotal.Sub(p.Discount)
	p.Status = PlanStatusApproved
	p.ApprovedAt = &now
	if approvedBy != uuid.Nil {
		p.ApprovedBy = &approvedBy
	}
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPlanApprovedEvent(p))

	return nil
}

// ReplaceLines swaps the full set of line items and recomputes totals.
// Legal only while PROPOSED; this is the sealed-plan guarantee.
func (p *TreatmentPlan) ReplaceLines(lines []PlanLine) error {
	if !p.Status.CanEditLines() {
		return shared.NewStateError(fmt.Sprintf("Line items are sealed once a plan leaves PROPOSED; plan %s is %s", p.ID, p.Status))
	}
	if len(lines) == 0 {
		return shared.NewValidationError("A plan requires at least one line item")
	}

	p.Lines = make([]PlanLine, 0, len(lines))
	p.adoptLines(lines)
	p.recomputeTotals()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPlanLinesReplacedEvent(p))

	return nil
}

// Complete marks the treatment as finished. Completed plans still accept
// ledger entries: outstanding installments keep being paid off.
func (p *TreatmentPlan) Complete(completedBy uuid.UUID) error {
	if p.Status != PlanStatusApproved {
		return shared.NewStateError(fmt.Sprintf("Only APPROVED plans can be completed; plan %s is %s", p.ID, p.Status))
	}

	p.Status = PlanStatusCompleted
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPlanCompletedEvent(p, completedBy))

	return nil
}

// Cancel abandons the plan. Committed plans are never deleted.
func (p *TreatmentPlan) Cancel(cancelledBy uuid.UUID, reason string) error {
	if !p.Status.CanCancel() {
		return shared.NewStateError(fmt.Sprintf("Cannot cancel plan %s in %s status", p.ID, p.Status))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewValidationError("Cancel reason is required")
	}

	now := time.Now()
	previous := p.Status
	p.Status = PlanStatusCancelled
	p.CancelledAt = &now
	p.CancelReason = reason
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPlanCancelledEvent(p, previous, cancelledBy))

	return nil
}

// adoptLines attaches lines to this plan
func (p *TreatmentPlan) adoptLines(lines []PlanLine) {
	for _, line := range lines {
		line.PlanID = p.ID
		p.Lines = append(p.Lines, line)
	}
}

// recomputeTotals derives subtotal and total from the frozen line prices.
// Only called pre-approval, where discount is always zero.
func (p *TreatmentPlan) recomputeTotals() {
	subtotal := decimal.Zero
	for _, line := range p.Lines {
		subtotal = subtotal.Add(line.Price)
	}
	p.Subtotal = subtotal
	p.Total = subtotal.Sub(p.Discount)
}

// GetSubtotalMoney returns the subtotal as Money
func (p *TreatmentPlan) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(p.Subtotal)
}

// GetDiscountMoney returns the discount as Money
func (p *TreatmentPlan) GetDiscountMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(p.Discount)
}

// GetTotalMoney returns the total as Money
func (p *TreatmentPlan) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(p.Total)
}

// IsProposed returns true if the plan is still a quote
func (p *TreatmentPlan) IsProposed() bool {
	return p.Status == PlanStatusProposed
}

// IsApproved returns true if the plan has been approved
func (p *TreatmentPlan) IsApproved() bool {
	return p.Status == PlanStatusApproved
}

// IsCancelled returns true if the plan was cancelled
func (p *TreatmentPlan) IsCancelled() bool {
	return p.Status == PlanStatusCancelled
}
