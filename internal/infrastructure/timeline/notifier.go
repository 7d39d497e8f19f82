// Package timeline delivers best-effort notifications to the clinic's
// audit/timeline feed after financial commits.
package timeline

import (
	"context"

	"github.com/echodent/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventTypeTimelineEntry is the envelope type published for each
// notification
const EventTypeTimelineEntry = "timeline.entry"

// Entry is the published timeline record
type Entry struct {
	shared.BaseDomainEvent
	Kind        string     `json:"kind"`
	Description string     `json:"description"`
	ActorID     uuid.UUID  `json:"actor_id"`
	SubjectID   *uuid.UUID `json:"subject_id"`
}

// Notifier publishes timeline entries over the event bus. Called only
// after the financial transaction has committed; a publish failure is
// logged and swallowed, never returned.
type Notifier struct {
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewNotifier creates a timeline notifier
func NewNotifier(publisher shared.EventPublisher, logger *zap.Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		logger:    logger.Named("timeline"),
	}
}

// Notify records one timeline entry
func (n *Notifier) Notify(ctx context.Context, eventType, description string, actorID uuid.UUID, subjectID *uuid.UUID) {
	entry := &Entry{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTimelineEntry, "Timeline", uuid.New()),
		Kind:            eventType,
		Description:     description,
		ActorID:         actorID,
		SubjectID:       subjectID,
	}

	if err := n.publisher.Publish(ctx, entry); err != nil {
		n.logger.Warn("timeline notification dropped",
			zap.String("kind", eventType),
			zap.String("description", description),
			zap.Error(err),
		)
		return
	}

	n.logger.Debug("timeline entry recorded",
		zap.String("kind", eventType),
		zap.String("actor_id", actorID.String()),
	)
}
