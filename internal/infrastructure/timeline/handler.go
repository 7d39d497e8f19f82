package timeline

import (
	"context"

	"github.com/echodent/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LogHandler consumes timeline entries off the event bus and writes them
// to the structured log. Stands in for the clinic timeline UI feed.
type LogHandler struct {
	logger *zap.Logger
}

// NewLogHandler creates a timeline log handler
func NewLogHandler(logger *zap.Logger) *LogHandler {
	return &LogHandler{logger: logger.Named("timeline.feed")}
}

var _ shared.EventHandler = (*LogHandler)(nil)

// EventTypes subscribes the handler to timeline entries only
func (h *LogHandler) EventTypes() []string {
	return []string{EventTypeTimelineEntry}
}

// Handle logs one timeline entry
func (h *LogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	entry, ok := event.(*Entry)
	if !ok {
		return nil
	}

	fields := []zap.Field{
		zap.String("kind", entry.Kind),
		zap.String("actor_id", entry.ActorID.String()),
	}
	if entry.SubjectID != nil {
		fields = append(fields, zap.String("subject_id", entry.SubjectID.String()))
	}
	h.logger.Info(entry.Description, fields...)
	return nil
}
