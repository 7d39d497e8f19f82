package catalog

import (
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the catalog context
const (
	EventTypeProcedureCreated  = "catalog.procedure.created"
	EventTypeProcedureRepriced = "catalog.procedure.repriced"
)

// ProcedureCreatedEvent is published when a procedure is added to the price table
type ProcedureCreatedEvent struct {
	shared.BaseDomainEvent
	Name         string          `json:"name"`
	DefaultPrice decimal.Decimal `json:"default_price"`
}

// NewProcedureCreatedEvent creates a ProcedureCreatedEvent
func NewProcedureCreatedEvent(p *Procedure) *ProcedureCreatedEvent {
	return &ProcedureCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProcedureCreated, "Procedure", p.ID),
		Name:            p.Name,
		DefaultPrice:    p.DefaultPrice,
	}
}

// ProcedureRepricedEvent is published when a procedure's default price changes
type ProcedureRepricedEvent struct {
	shared.BaseDomainEvent
	Name     string          `json:"name"`
	OldPrice decimal.Decimal `json:"old_price"`
	NewPrice decimal.Decimal `json:"new_price"`
}

// NewProcedureRepricedEvent creates a ProcedureRepricedEvent
func NewProcedureRepricedEvent(p *Procedure, oldPrice decimal.Decimal) *ProcedureRepricedEvent {
	return &ProcedureRepricedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProcedureRepriced, "Procedure", p.ID),
		Name:            p.Name,
		OldPrice:        oldPrice,
		NewPrice:        p.DefaultPrice,
	}
}
