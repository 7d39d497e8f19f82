package ledger

import (
	"context"

	"github.com/google/uuid"
)

// Notifier is the outbound port to the clinic's audit/timeline
// collaborator. Implementations must be best-effort: Notify is called
// only after the surrounding transaction has committed, and a failed
// notification must never surface to the caller.
type Notifier interface {
	Notify(ctx context.Context, eventType, description string, actorID uuid.UUID, subjectID *uuid.UUID)
}

// Timeline event types recorded against patient and cash histories
const (
	NotifyTypePlan    = "PLANO"
	NotifyTypeFinance = "FINANCEIRO"
	NotifyTypeCash    = "CAIXA"
)

// NoOpNotifier discards notifications; used in tests
type NoOpNotifier struct{}

// Notify does nothing
func (NoOpNotifier) Notify(context.Context, string, string, uuid.UUID, *uuid.UUID) {}
