package models

import (
	"github.com/echodent/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProcedureModel is the GORM model for catalog procedures
type ProcedureModel struct {
	AuditedAggregateModel
	Name         string          `gorm:"type:varchar(200);not null;index"`
	DefaultPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for ProcedureModel
func (ProcedureModel) TableName() string {
	return "procedures"
}

// ToDomain converts the model to a domain Procedure
func (m *ProcedureModel) ToDomain() *catalog.Procedure {
	p := &catalog.Procedure{
		Name:         m.Name,
		DefaultPrice: m.DefaultPrice,
	}
	m.PopulateAuditedAggregateRoot(&p.AuditedAggregateRoot)
	return p
}

// ProcedureModelFromDomain converts a domain Procedure to the model
func ProcedureModelFromDomain(p *catalog.Procedure) *ProcedureModel {
	m := &ProcedureModel{
		Name:         p.Name,
		DefaultPrice: p.DefaultPrice,
	}
	m.FromDomainAuditedAggregateRoot(p.AuditedAggregateRoot)
	return m
}
