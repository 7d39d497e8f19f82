// Package ledger wires the financial domain into use cases: plan
// lifecycle, ledger entries, installment forecasts and cash-day closing.
package ledger

import (
	"context"

	"github.com/echodent/backend/internal/domain/catalog"
	"github.com/echodent/backend/internal/domain/ledger"
)

// TransactionalRepositories bundles every repository a ledger use case
// may touch inside one transaction
type TransactionalRepositories struct {
	Plans        ledger.TreatmentPlanRepository
	Entries      ledger.LedgerEntryRepository
	Installments ledger.InstallmentRepository
	CashDays     ledger.CashDayRepository
	Procedures   catalog.ProcedureRepository
}

// TransactionScope executes a function within a storage transaction.
// Every repository handed to fn operates on the same transaction; any
// error from fn rolls the whole unit back with zero partial writes.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope provides transaction-less execution for tests
type NoOpTransactionScope struct {
	Repos TransactionalRepositories
}

// NewNoOpTransactionScope creates a scope that runs fn directly against
// the given repositories
func NewNoOpTransactionScope(repos TransactionalRepositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{Repos: repos}
}

// Execute runs the function without transaction semantics
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.Repos)
}
