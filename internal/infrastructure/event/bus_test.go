package event

import (
	"context"
	"errors"
	"testing"

	"github.com/echodent/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Test", uuid.New())}
}

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	fail     bool
	panics   bool
}

func (h *recordingHandler) Handle(_ context.Context, ev shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	if h.fail {
		return errors.New("handler failure")
	}
	h.received = append(h.received, ev)
	return nil
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func TestInMemoryEventBus_PublishToSubscribed(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"ledger.entry.recorded"}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("ledger.entry.recorded"), newTestEvent("other.event"))

	require.NoError(t, err)
	require.Len(t, handler.received, 1)
	assert.Equal(t, "ledger.entry.recorded", handler.received[0].EventType())
}

func TestInMemoryEventBus_WildcardHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("a"), newTestEvent("b"))

	require.NoError(t, err)
	assert.Len(t, handler.received, 2)
}

func TestInMemoryEventBus_FailingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{types: []string{"x"}, fail: true}
	healthy := &recordingHandler{types: []string{"x"}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("x"))

	require.NoError(t, err)
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_PanickingHandlerIsContained(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	panicking := &recordingHandler{types: []string{"x"}, panics: true}
	healthy := &recordingHandler{types: []string{"x"}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), newTestEvent("x"))
	})
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"x"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	_ = bus.Publish(context.Background(), newTestEvent("x"))

	assert.Empty(t, handler.received)
}
