package ledger

import (
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// BalanceStatement is the derived financial position of one plan.
// Nothing here is stored; it is recomputed from the full ledger on every
// read, which makes reversals self-correcting.
type BalanceStatement struct {
	Total         valueobject.Money `json:"total"`
	TotalPaid     valueobject.Money `json:"total_paid"`
	TotalAdjusted valueobject.Money `json:"total_adjusted"`
	BalanceDue    valueobject.Money `json:"balance_due"`
}

// IsSettled returns true when nothing is owed
func (b BalanceStatement) IsSettled() bool {
	return !b.BalanceDue.IsPositive()
}

// HasCredit returns true when the patient overpaid
func (b BalanceStatement) HasCredit() bool {
	return b.BalanceDue.IsNegative()
}

// ComputeBalance folds a plan's full ledger into its balance statement:
//
//	balanceDue = planTotal + sum(adjustments) - sum(payments)
//
// Every entry participates, reversals included; a payment and its reversal
// cancel out arithmetically. The balance is never clamped at zero, so an
// overpaid plan reports a negative balance due.
func ComputeBalance(plan *TreatmentPlan, entries []*LedgerEntry) BalanceStatement {
	paid := decimal.Zero
	adjusted := decimal.Zero
	for _, entry := range entries {
		switch entry.Kind {
		case EntryKindPayment:
			paid = paid.Add(entry.Amount)
		case EntryKindAdjustment:
			adjusted = adjusted.Add(entry.Amount)
		}
	}

	return BalanceStatement{
		Total:         valueobject.NewMoneyBRL(plan.Total),
		TotalPaid:     valueobject.NewMoneyBRL(paid),
		TotalAdjusted: valueobject.NewMoneyBRL(adjusted),
		BalanceDue:    valueobject.NewMoneyBRL(plan.Total.Add(adjusted).Sub(paid)),
	}
}
