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

// EntryService records movements on plan ledgers. Entries are append-only;
// every correction is a new entry.
type EntryService struct {
	scope    TransactionScope
	notifier Notifier
}

// NewEntryService creates a new EntryService
func NewEntryService(scope TransactionScope, notifier Notifier) *EntryService {
	return &EntryService{scope: scope, notifier: notifier}
}

// RecordPaymentRequest carries a payment to be recorded
type RecordPaymentRequest struct {
	ActorID        uuid.UUID
	PlanID         uuid.UUID
	Amount         valueobject.Money
	Method         ledger.PaymentMethod
	EntryDate      time.Time
	Description    string
	InstallmentSeq *int
}

// RecordPayment persists one payment entry against an approved or
// completed plan
func (s *EntryService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*ledger.LedgerEntry, error) {
	entryDate := req.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	var entry *ledger.LedgerEntry
	var patientID uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		plan, err := repos.Plans.FindByID(ctx, req.PlanID)
		if err != nil {
			return err
		}
		patientID = plan.PatientID

		entry, err = ledger.NewPayment(req.ActorID, plan, req.Amount, req.Method, entryDate, req.Description, req.InstallmentSeq)
		if err != nil {
			return err
		}
		return repos.Entries.Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, NotifyTypeFinance,
		fmt.Sprintf("Pagamento de %s recebido (%s)", req.Amount.StringFixed(2), req.Method),
		req.ActorID, &patientID)

	return entry, nil
}

// RecordAdjustmentRequest carries a signed correction to be recorded
type RecordAdjustmentRequest struct {
	ActorID   uuid.UUID
	PlanID    uuid.UUID
	Amount    valueobject.Money
	EntryDate time.Time
	Reason    string
}

// RecordAdjustment persists one adjustment entry. Adjustments never
// consult the cash-day lock: they are the sanctioned channel to correct
// a closed day without reopening it.
func (s *EntryService) RecordAdjustment(ctx context.Context, req RecordAdjustmentRequest) (*ledger.LedgerEntry, error) {
	entryDate := req.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	var entry *ledger.LedgerEntry
	var patientID uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		plan, err := repos.Plans.FindByID(ctx, req.PlanID)
		if err != nil {
			return err
		}
		patientID = plan.PatientID

		entry, err = ledger.NewAdjustment(req.ActorID, plan, req.Amount, entryDate, req.Reason)
		if err != nil {
			return err
		}
		return repos.Entries.Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, NotifyTypeFinance,
		fmt.Sprintf("Ajuste de %s registrado: %s", req.Amount.StringFixed(2), entry.Description),
		req.ActorID, &patientID)

	return entry, nil
}

// ReverseEntry voids an original entry with a compensating negated entry.
// The guard runs against the calendar date of the *original* entry: once
// that cash day is closed, the reversal is refused and the caller is
// pointed at the adjustment channel instead.
func (s *EntryService) ReverseEntry(ctx context.Context, actorID, entryID uuid.UUID, reason string) (*ledger.LedgerEntry, error) {
	var reversal *ledger.LedgerEntry
	var patientID uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		original, err := repos.Entries.FindByID(ctx, entryID)
		if err != nil {
			return err
		}

		if _, err := repos.Entries.FindReversalOf(ctx, original.ID); err == nil {
			return shared.NewValidationError(fmt.Sprintf("Entry %s has already been reversed", original.ID))
		} else if !errors.Is(err, shared.ErrNotFound) && !shared.IsDomainErrorWithCode(err, shared.CodeNotFound) {
			return err
		}

		day, err := repos.CashDays.FindByDate(ctx, original.EntryDate)
		if err == nil && day.IsClosed() {
			return shared.NewLockedPeriodError(fmt.Sprintf(
				"Cash day %s is closed; record an Adjustment instead of reversing entry %s",
				original.EntryDate.Format("2006-01-02"), original.ID))
		}
		if err != nil && !errors.Is(err, shared.ErrNotFound) && !shared.IsDomainErrorWithCode(err, shared.CodeNotFound) {
			return err
		}

		plan, err := repos.Plans.FindByID(ctx, original.PlanID)
		if err != nil {
			return err
		}
		if !plan.Status.AcceptsEntries() {
			return shared.NewStateError(fmt.Sprintf("Plan %s does not accept entries in %s status", plan.ID, plan.Status))
		}
		patientID = plan.PatientID

		reversal, err = ledger.NewReversal(actorID, original, reason)
		if err != nil {
			return err
		}
		return repos.Entries.Append(ctx, reversal)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, NotifyTypeFinance, reversal.Description, actorID, &patientID)

	return reversal, nil
}

// ListEntries returns a plan's full ledger in insertion order
func (s *EntryService) ListEntries(ctx context.Context, planID uuid.UUID) ([]*ledger.LedgerEntry, error) {
	var entries []*ledger.LedgerEntry
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.Plans.FindByID(ctx, planID); err != nil {
			return err
		}
		var err error
		entries, err = repos.Entries.FindByPlan(ctx, planID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
