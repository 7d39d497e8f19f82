package models

import (
	"time"

	"github.com/echodent/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TreatmentPlanModel is the GORM model for treatment plan aggregates
type TreatmentPlanModel struct {
	AuditedAggregateModel
	PatientID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	DentistID    *uuid.UUID      `gorm:"type:uuid;index"`
	Status       string          `gorm:"type:varchar(20);not null;index"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ApprovedAt   *time.Time
	ApprovedBy   *uuid.UUID `gorm:"type:uuid"`
	CancelledAt  *time.Time
	CancelReason string          `gorm:"type:text"`
	Lines        []PlanLineModel `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TreatmentPlanModel
func (TreatmentPlanModel) TableName() string {
	return "treatment_plans"
}

// PlanLineModel is the GORM model for frozen plan line items
type PlanLineModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	PlanID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProcedureID   *uuid.UUID      `gorm:"type:uuid;index"`
	NameSnapshot  string          `gorm:"type:varchar(200);not null"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ToothFaceNote string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for PlanLineModel
func (PlanLineModel) TableName() string {
	return "plan_lines"
}

// ToDomain converts the model to a domain TreatmentPlan
func (m *TreatmentPlanModel) ToDomain() *ledger.TreatmentPlan {
	plan := &ledger.TreatmentPlan{
		PatientID:    m.PatientID,
		DentistID:    m.DentistID,
		Status:       ledger.PlanStatus(m.Status),
		Subtotal:     m.Subtotal,
		Discount:     m.Discount,
		Total:        m.Total,
		ApprovedAt:   m.ApprovedAt,
		ApprovedBy:   m.ApprovedBy,
		CancelledAt:  m.CancelledAt,
		CancelReason: m.CancelReason,
		Lines:        make([]ledger.PlanLine, len(m.Lines)),
	}
	m.PopulateAuditedAggregateRoot(&plan.AuditedAggregateRoot)
	for i, line := range m.Lines {
		plan.Lines[i] = ledger.PlanLine{
			ID:            line.ID,
			PlanID:        line.PlanID,
			ProcedureID:   line.ProcedureID,
			NameSnapshot:  line.NameSnapshot,
			Price:         line.Price,
			ToothFaceNote: line.ToothFaceNote,
		}
	}
	return plan
}

// TreatmentPlanModelFromDomain converts a domain TreatmentPlan to the model
func TreatmentPlanModelFromDomain(plan *ledger.TreatmentPlan) *TreatmentPlanModel {
	m := &TreatmentPlanModel{
		PatientID:    plan.PatientID,
		DentistID:    plan.DentistID,
		Status:       plan.Status.String(),
		Subtotal:     plan.Subtotal,
		Discount:     plan.Discount,
		Total:        plan.Total,
		ApprovedAt:   plan.ApprovedAt,
		ApprovedBy:   plan.ApprovedBy,
		CancelledAt:  plan.CancelledAt,
		CancelReason: plan.CancelReason,
		Lines:        make([]PlanLineModel, len(plan.Lines)),
	}
	m.FromDomainAuditedAggregateRoot(plan.AuditedAggregateRoot)
	for i, line := range plan.Lines {
		m.Lines[i] = PlanLineModel{
			ID:            line.ID,
			PlanID:        plan.ID,
			ProcedureID:   line.ProcedureID,
			NameSnapshot:  line.NameSnapshot,
			Price:         line.Price,
			ToothFaceNote: line.ToothFaceNote,
		}
	}
	return m
}

// LedgerEntryModel is the GORM model for append-only ledger entries
type LedgerEntryModel struct {
	AuditedAggregateModel
	PlanID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind            string          `gorm:"type:varchar(20);not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EntryDate       time.Time       `gorm:"not null;index"`
	Description     string          `gorm:"type:text"`
	PaymentMethod   *string         `gorm:"type:varchar(20)"`
	InstallmentSeq  *int
	ReversedEntryID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
}

// TableName returns the table name for LedgerEntryModel
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the model to a domain LedgerEntry
func (m *LedgerEntryModel) ToDomain() *ledger.LedgerEntry {
	entry := &ledger.LedgerEntry{
		PlanID:          m.PlanID,
		Kind:            ledger.EntryKind(m.Kind),
		Amount:          m.Amount,
		EntryDate:       m.EntryDate,
		Description:     m.Description,
		InstallmentSeq:  m.InstallmentSeq,
		ReversedEntryID: m.ReversedEntryID,
	}
	m.PopulateAuditedAggregateRoot(&entry.AuditedAggregateRoot)
	if m.PaymentMethod != nil {
		method := ledger.PaymentMethod(*m.PaymentMethod)
		entry.PaymentMethod = &method
	}
	return entry
}

// LedgerEntryModelFromDomain converts a domain LedgerEntry to the model
func LedgerEntryModelFromDomain(entry *ledger.LedgerEntry) *LedgerEntryModel {
	m := &LedgerEntryModel{
		PlanID:          entry.PlanID,
		Kind:            entry.Kind.String(),
		Amount:          entry.Amount,
		EntryDate:       entry.EntryDate,
		Description:     entry.Description,
		InstallmentSeq:  entry.InstallmentSeq,
		ReversedEntryID: entry.ReversedEntryID,
	}
	m.FromDomainAuditedAggregateRoot(entry.AuditedAggregateRoot)
	if entry.PaymentMethod != nil {
		method := string(*entry.PaymentMethod)
		m.PaymentMethod = &method
	}
	return m
}

// InstallmentModel is the GORM model for forecast installments
type InstallmentModel struct {
	BaseModel
	PlanID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Sequence int             `gorm:"not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DueDate  time.Time       `gorm:"not null"`
}

// TableName returns the table name for InstallmentModel
func (InstallmentModel) TableName() string {
	return "installments"
}

// ToDomain converts the model to a domain Installment
func (m *InstallmentModel) ToDomain() *ledger.Installment {
	return &ledger.Installment{
		BaseEntity: m.BaseModel.ToDomain(),
		PlanID:     m.PlanID,
		Sequence:   m.Sequence,
		Amount:     m.Amount,
		DueDate:    m.DueDate,
	}
}

// InstallmentModelFromDomain converts a domain Installment to the model
func InstallmentModelFromDomain(i *ledger.Installment) *InstallmentModel {
	m := &InstallmentModel{
		PlanID:   i.PlanID,
		Sequence: i.Sequence,
		Amount:   i.Amount,
		DueDate:  i.DueDate,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}

// CashDayModel is the GORM model for day closing records
type CashDayModel struct {
	AuditedAggregateModel
	Date         time.Time       `gorm:"not null;uniqueIndex"`
	Status       string          `gorm:"type:varchar(20);not null"`
	ClosedTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ClosedAt     *time.Time
	ClosedBy     *uuid.UUID `gorm:"type:uuid"`
	ClosingNotes string     `gorm:"type:text"`
}

// TableName returns the table name for CashDayModel
func (CashDayModel) TableName() string {
	return "cash_days"
}

// ToDomain converts the model to a domain CashDay
func (m *CashDayModel) ToDomain() *ledger.CashDay {
	day := &ledger.CashDay{
		Date:         m.Date,
		Status:       ledger.CashDayStatus(m.Status),
		ClosedTotal:  m.ClosedTotal,
		ClosedAt:     m.ClosedAt,
		ClosedBy:     m.ClosedBy,
		ClosingNotes: m.ClosingNotes,
	}
	m.PopulateAuditedAggregateRoot(&day.AuditedAggregateRoot)
	return day
}

// CashDayModelFromDomain converts a domain CashDay to the model
func CashDayModelFromDomain(day *ledger.CashDay) *CashDayModel {
	m := &CashDayModel{
		Date:         day.Date,
		Status:       day.Status.String(),
		ClosedTotal:  day.ClosedTotal,
		ClosedAt:     day.ClosedAt,
		ClosedBy:     day.ClosedBy,
		ClosingNotes: day.ClosingNotes,
	}
	m.FromDomainAuditedAggregateRoot(day.AuditedAggregateRoot)
	return m
}
