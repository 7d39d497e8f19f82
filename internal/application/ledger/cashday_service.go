package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/echodent/backend/internal/domain/ledger"
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CashDayService reconciles and seals business days
type CashDayService struct {
	scope    TransactionScope
	notifier Notifier
}

// NewCashDayService creates a new CashDayService
func NewCashDayService(scope TransactionScope, notifier Notifier) *CashDayService {
	return &CashDayService{scope: scope, notifier: notifier}
}

// DaySummary is the reconciliation view of one calendar date
type DaySummary struct {
	Date         time.Time
	Status       ledger.CashDayStatus
	PaymentTotal valueobject.Money
	Entries      []*ledger.LedgerEntry
	ClosedTotal  *valueobject.Money
}

// GetDaySummary returns the entries and running payment total for a date,
// whether or not a closing record exists yet
func (s *CashDayService) GetDaySummary(ctx context.Context, date time.Time) (*DaySummary, error) {
	date = ledger.NormalizeCashDate(date)

	var summary *DaySummary
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		entries, err := repos.Entries.FindByDate(ctx, date)
		if err != nil {
			return err
		}
		total, err := repos.Entries.SumPaymentsByDate(ctx, date)
		if err != nil {
			return err
		}

		summary = &DaySummary{
			Date:         date,
			Status:       ledger.CashDayStatusOpen,
			PaymentTotal: total,
			Entries:      entries,
		}

		day, err := repos.CashDays.FindByDate(ctx, date)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) || shared.IsDomainErrorWithCode(err, shared.CodeNotFound) {
				return nil
			}
			return err
		}
		summary.Status = day.Status
		if day.IsClosed() {
			closed := day.GetClosedTotalMoney()
			summary.ClosedTotal = &closed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// IsDayOpen reports whether entries dated on the given date may still be
// reversed. A date with no closing record is open.
func (s *CashDayService) IsDayOpen(ctx context.Context, date time.Time) (bool, error) {
	date = ledger.NormalizeCashDate(date)

	open := true
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		day, err := repos.CashDays.FindByDate(ctx, date)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) || shared.IsDomainErrorWithCode(err, shared.CodeNotFound) {
				return nil
			}
			return err
		}
		open = !day.IsClosed()
		return nil
	})
	if err != nil {
		return false, err
	}
	return open, nil
}

// CloseDay seals a calendar date, freezing the reconciled payment total.
// When the caller supplies no settled figure, the day's payment sum is
// computed and frozen instead. Closing twice fails with ALREADY_CLOSED.
func (s *CashDayService) CloseDay(ctx context.Context, actorID uuid.UUID, date time.Time, settledTotal *valueobject.Money, notes string) (*ledger.CashDay, error) {
	date = ledger.NormalizeCashDate(date)

	var day *ledger.CashDay
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.CashDays.FindByDate(ctx, date)
		switch {
		case err == nil:
			day = existing
		case errors.Is(err, shared.ErrNotFound) || shared.IsDomainErrorWithCode(err, shared.CodeNotFound):
			day, err = ledger.NewCashDay(actorID, date)
			if err != nil {
				return err
			}
		default:
			return err
		}

		total := valueobject.ZeroBRL()
		if settledTotal != nil {
			total = *settledTotal
		} else {
			total, err = repos.Entries.SumPaymentsByDate(ctx, date)
			if err != nil {
				return err
			}
		}

		if err := day.Close(actorID, total, notes); err != nil {
			return err
		}
		return repos.CashDays.Save(ctx, day)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, NotifyTypeCash,
		fmt.Sprintf("Caixa de %s fechado com saldo apurado %s", day.Date.Format("2006-01-02"), day.ClosedTotal.StringFixed(2)),
		actorID, nil)

	return day, nil
}

// ListDays returns closing records in a date range, newest first
func (s *CashDayService) ListDays(ctx context.Context, from, to time.Time, filter shared.Filter) (*shared.Paginated[*ledger.CashDay], error) {
	var page *shared.Paginated[*ledger.CashDay]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		page, err = repos.CashDays.FindRange(ctx, ledger.NormalizeCashDate(from), ledger.NormalizeCashDate(to), filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}
