package catalog

import (
	"strings"

	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Procedure is the price-table entry for a clinical procedure.
// Treatment plans copy its name and price at creation time; later edits
// here never propagate to existing plan lines.
type Procedure struct {
	shared.AuditedAggregateRoot
	Name         string          `json:"name"`
	DefaultPrice decimal.Decimal `json:"default_price"`
}

// NewProcedure creates a new catalog procedure
func NewProcedure(createdBy uuid.UUID, name string, defaultPrice valueobject.Money) (*Procedure, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Procedure name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("Procedure name cannot exceed 200 characters")
	}
	if defaultPrice.IsNegative() {
		return nil, shared.NewValidationError("Procedure price cannot be negative")
	}

	p := &Procedure{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Name:                 name,
		DefaultPrice:         defaultPrice.Amount(),
	}

	p.AddDomainEvent(NewProcedureCreatedEvent(p))

	return p, nil
}

// Rename changes the display name of the procedure
func (p *Procedure) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Procedure name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Procedure name cannot exceed 200 characters")
	}

	p.Name = name
	p.IncrementVersion()

	return nil
}

// Reprice updates the default price used for NEW plan lines.
// Frozen prices on existing plans are untouched.
func (p *Procedure) Reprice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewValidationError("Procedure price cannot be negative")
	}

	old := p.DefaultPrice
	p.DefaultPrice = price.Amount()
	p.IncrementVersion()

	p.AddDomainEvent(NewProcedureRepricedEvent(p, old))

	return nil
}

// GetDefaultPriceMoney returns the default price as Money
func (p *Procedure) GetDefaultPriceMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(p.DefaultPrice)
}
