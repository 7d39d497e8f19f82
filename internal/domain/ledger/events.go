package ledger

import (
	"time"

	"github.com/echodent/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger event types
const (
	EventTypePlanCreated       = "ledger.plan.created"
	EventTypePlanApproved      = "ledger.plan.approved"
	EventTypePlanLinesReplaced = "ledger.plan.lines_replaced"
	EventTypePlanCompleted     = "ledger.plan.completed"
	EventTypePlanCancelled     = "ledger.plan.cancelled"
	EventTypeEntryRecorded     = "ledger.entry.recorded"
	EventTypeEntryReversed     = "ledger.entry.reversed"
	EventTypeCashDayClosed     = "ledger.cashday.closed"
)

// Aggregate type names used in event envelopes
const (
	AggregateTypePlan    = "TreatmentPlan"
	AggregateTypeEntry   = "LedgerEntry"
	AggregateTypeCashDay = "CashDay"
)

// PlanCreatedEvent fires when a treatment plan is created
type PlanCreatedEvent struct {
	shared.BaseDomainEvent
	PatientID uuid.UUID       `json:"patient_id"`
	Status    PlanStatus      `json:"status"`
	Total     decimal.Decimal `json:"total"`
	LineCount int             `json:"line_count"`
}

// NewPlanCreatedEvent creates a plan created event
func NewPlanCreatedEvent(plan *TreatmentPlan) *PlanCreatedEvent {
	return &PlanCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanCreated, AggregateTypePlan, plan.ID),
		PatientID:       plan.PatientID,
		Status:          plan.Status,
		Total:           plan.Total,
		LineCount:       len(plan.Lines),
	}
}

// PlanApprovedEvent fires when a plan is sealed
type PlanApprovedEvent struct {
	shared.BaseDomainEvent
	PatientID uuid.UUID       `json:"patient_id"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// NewPlanApprovedEvent creates a plan approved event
func NewPlanApprovedEvent(plan *TreatmentPlan) *PlanApprovedEvent {
	return &PlanApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanApproved, AggregateTypePlan, plan.ID),
		PatientID:       plan.PatientID,
		Subtotal:        plan.Subtotal,
		Discount:        plan.Discount,
		Total:           plan.Total,
	}
}

// PlanLinesReplacedEvent fires when a proposed plan's line items change
type PlanLinesReplacedEvent struct {
	shared.BaseDomainEvent
	PatientID uuid.UUID       `json:"patient_id"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	LineCount int             `json:"line_count"`
}

// NewPlanLinesReplacedEvent creates a lines replaced event
func NewPlanLinesReplacedEvent(plan *TreatmentPlan) *PlanLinesReplacedEvent {
	return &PlanLinesReplacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanLinesReplaced, AggregateTypePlan, plan.ID),
		PatientID:       plan.PatientID,
		Subtotal:        plan.Subtotal,
		LineCount:       len(plan.Lines),
	}
}

// PlanCompletedEvent fires when treatment finishes
type PlanCompletedEvent struct {
	shared.BaseDomainEvent
	PatientID   uuid.UUID `json:"patient_id"`
	CompletedBy uuid.UUID `json:"completed_by"`
}

// NewPlanCompletedEvent creates a plan completed event
func NewPlanCompletedEvent(plan *TreatmentPlan, completedBy uuid.UUID) *PlanCompletedEvent {
	return &PlanCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanCompleted, AggregateTypePlan, plan.ID),
		PatientID:       plan.PatientID,
		CompletedBy:     completedBy,
	}
}

// PlanCancelledEvent fires when a plan is abandoned
type PlanCancelledEvent struct {
	shared.BaseDomainEvent
	PatientID      uuid.UUID  `json:"patient_id"`
	PreviousStatus PlanStatus `json:"previous_status"`
	CancelledBy    uuid.UUID  `json:"cancelled_by"`
	Reason         string     `json:"reason"`
}

// NewPlanCancelledEvent creates a plan cancelled event
func NewPlanCancelledEvent(plan *TreatmentPlan, previous PlanStatus, cancelledBy uuid.UUID) *PlanCancelledEvent {
	return &PlanCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanCancelled, AggregateTypePlan, plan.ID),
		PatientID:       plan.PatientID,
		PreviousStatus:  previous,
		CancelledBy:     cancelledBy,
		Reason:          plan.CancelReason,
	}
}

// EntryRecordedEvent fires for every committed ledger entry
type EntryRecordedEvent struct {
	shared.BaseDomainEvent
	PlanID    uuid.UUID       `json:"plan_id"`
	Kind      EntryKind       `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	EntryDate time.Time       `json:"entry_date"`
}

// NewEntryRecordedEvent creates an entry recorded event
func NewEntryRecordedEvent(entry *LedgerEntry) *EntryRecordedEvent {
	return &EntryRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEntryRecorded, AggregateTypeEntry, entry.ID),
		PlanID:          entry.PlanID,
		Kind:            entry.Kind,
		Amount:          entry.Amount,
		EntryDate:       entry.EntryDate,
	}
}

// EntryReversedEvent fires when a compensating entry voids an original
type EntryReversedEvent struct {
	shared.BaseDomainEvent
	PlanID          uuid.UUID       `json:"plan_id"`
	ReversedEntryID uuid.UUID       `json:"reversed_entry_id"`
	Kind            EntryKind       `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
}

// NewEntryReversedEvent creates an entry reversed event
func NewEntryReversedEvent(reversal, original *LedgerEntry) *EntryReversedEvent {
	return &EntryReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEntryReversed, AggregateTypeEntry, reversal.ID),
		PlanID:          reversal.PlanID,
		ReversedEntryID: original.ID,
		Kind:            reversal.Kind,
		Amount:          reversal.Amount,
	}
}

// CashDayClosedEvent fires when a business day is sealed
type CashDayClosedEvent struct {
	shared.BaseDomainEvent
	Date        time.Time       `json:"date"`
	ClosedTotal decimal.Decimal `json:"closed_total"`
}

// NewCashDayClosedEvent creates a cash day closed event
func NewCashDayClosedEvent(day *CashDay) *CashDayClosedEvent {
	return &CashDayClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCashDayClosed, AggregateTypeCashDay, day.ID),
		Date:            day.Date,
		ClosedTotal:     day.ClosedTotal,
	}
}
