package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vendora/backend/internal/domain/catalog"
	"github.com/vendora/backend/internal/domain/shared"
)

// recordingHandler implements EventHandler for testing
type recordingHandler struct {
	eventTypes []string
	mu         sync.Mutex
	handled    []shared.DomainEvent
	err        error
	panics     bool
}

func newRecordingHandler(eventTypes ...string) *recordingHandler {
	return &recordingHandler{eventTypes: eventTypes}
}

func (h *recordingHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	if h.panics {
		panic("handler blew up")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, evt)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *recordingHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func approvedEvent(t *testing.T) *catalog.ProductApprovedEvent {
	t.Helper()

	product, err := catalog.NewProduct(uuid.New(), "Organic Tea", "", "Acme", decimal.NewFromFloat(19.90), decimal.Zero)
	require.NoError(t, err)
	return catalog.NewProductApprovedEvent(product)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	t.Run("delivers to a matching handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := newRecordingHandler(catalog.EventTypeProductApproved)
		bus.Subscribe(handler)

		evt := approvedEvent(t)
		require.NoError(t, bus.Publish(context.Background(), evt))

		handled := handler.getHandled()
		require.Len(t, handled, 1)
		assert.Equal(t, catalog.EventTypeProductApproved, handled[0].EventType())
	})

	t.Run("skips handlers of other event types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := newRecordingHandler(catalog.EventTypeProductRejected)
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(context.Background(), approvedEvent(t)))
		assert.Empty(t, handler.getHandled())
	})

	t.Run("wildcard handler receives everything", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := newRecordingHandler()
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(context.Background(), approvedEvent(t), approvedEvent(t)))
		assert.Len(t, handler.getHandled(), 2)
	})

	t.Run("handler error does not surface to the publisher", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := newRecordingHandler(catalog.EventTypeProductApproved)
		failing.err = errors.New("smtp down")
		second := newRecordingHandler(catalog.EventTypeProductApproved)
		bus.Subscribe(failing)
		bus.Subscribe(second)

		err := bus.Publish(context.Background(), approvedEvent(t))

		assert.NoError(t, err)
		assert.Len(t, second.getHandled(), 1)
	})

	t.Run("handler panic is isolated", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := newRecordingHandler(catalog.EventTypeProductApproved)
		panicking.panics = true
		second := newRecordingHandler(catalog.EventTypeProductApproved)
		bus.Subscribe(panicking)
		bus.Subscribe(second)

		assert.NotPanics(t, func() {
			_ = bus.Publish(context.Background(), approvedEvent(t))
		})
		assert.Len(t, second.getHandled(), 1)
	})
}

func TestInMemoryEventBus_NilLogger(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	handler := newRecordingHandler(catalog.EventTypeProductApproved)
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), approvedEvent(t)))
	assert.Len(t, handler.getHandled(), 1)
}
