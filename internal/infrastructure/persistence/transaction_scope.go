package persistence

import (
	"context"

	appledger "github.com/echodent/backend/internal/application/ledger"
	"gorm.io/gorm"
)

// GormTransactionScope implements the application TransactionScope on a
// GORM transaction. Every repository handed to fn is bound to the same
// tx, so a failing use case rolls back with zero partial writes.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

var _ appledger.TransactionScope = (*GormTransactionScope)(nil)

// Execute runs fn inside one database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(appledger.TransactionalRepositories{
			Plans:        NewGormTreatmentPlanRepository(tx),
			Entries:      NewGormLedgerEntryRepository(tx),
			Installments: NewGormInstallmentRepository(tx),
			CashDays:     NewGormCashDayRepository(tx),
			Procedures:   NewGormProcedureRepository(tx),
		})
	})
}
