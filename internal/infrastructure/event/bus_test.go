package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/resto/backend/internal/domain/shared"
)

func zaptestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

type stubEvent struct {
	shared.BaseDomainEvent
}

func stubAlert(eventType string) *stubEvent {
	return &stubEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Batch", uuid.New()),
	}
}

// recordingHandler collects every event it receives
type recordingHandler struct {
	types []string
	err   error
	panic bool

	mu       sync.Mutex
	received []shared.DomainEvent
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panic {
		panic("subscriber bug")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.received)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	t.Run("delivers to matching handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zaptestLogger(t))
		h := &recordingHandler{}
		bus.Subscribe(h, "inventory.stock_below_threshold")

		evt := stubAlert("inventory.stock_below_threshold")
		require.NoError(t, bus.Publish(context.Background(), evt))

		require.Equal(t, 1, h.count())
		assert.Equal(t, evt, h.received[0])
	})

	t.Run("delivers each event of a batch", func(t *testing.T) {
		bus := NewInMemoryEventBus(zaptestLogger(t))
		h := &recordingHandler{}
		bus.Subscribe(h, "inventory.batch_depleted")

		err := bus.Publish(context.Background(),
			stubAlert("inventory.batch_depleted"),
			stubAlert("inventory.batch_depleted"),
		)

		require.NoError(t, err)
		assert.Equal(t, 2, h.count())
	})

	t.Run("fans out to every subscriber", func(t *testing.T) {
		bus := NewInMemoryEventBus(zaptestLogger(t))
		first := &recordingHandler{}
		second := &recordingHandler{}
		bus.Subscribe(first, "inventory.stock_exported")
		bus.Subscribe(second, "inventory.stock_exported")

		require.NoError(t, bus.Publish(context.Background(), stubAlert("inventory.stock_exported")))

		assert.Equal(t, 1, first.count())
		assert.Equal(t, 1, second.count())
	})

	t.Run("skips handlers for other types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zaptestLogger(t))
		h := &recordingHandler{}
		bus.Subscribe(h, "inventory.stock_imported")

		require.NoError(t, bus.Publish(context.Background(), stubAlert("inventory.stock_below_threshold")))

		assert.Zero(t, h.count())
	})

	t.Run("wildcard handler sees everything", func(t *testing.T) {
		bus := NewInMemoryEventBus(zaptestLogger(t))
		h := &recordingHandler{}
		bus.Subscribe(h)

		require.NoError(t, bus.Publish(context.Background(),
			stubAlert("inventory.stock_below_threshold"),
			stubAlert("inventory.batch_depleted"),
		))

		assert.Equal(t, 2, h.count())
	})

	t.Run("failing handler does not block the rest", func(t *testing.T) {
		bus := NewInMemoryEventBus(zaptestLogger(t))
		broken := &recordingHandler{err: errors.New("notifier down")}
		healthy := &recordingHandler{}
		bus.Subscribe(broken, "inventory.batch_depleted")
		bus.Subscribe(healthy, "inventory.batch_depleted")

		require.NoError(t, bus.Publish(context.Background(), stubAlert("inventory.batch_depleted")))

		assert.Equal(t, 1, broken.count())
		assert.Equal(t, 1, healthy.count())
	})

	t.Run("panicking handler is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zaptestLogger(t))
		bad := &recordingHandler{panic: true}
		good := &recordingHandler{}
		bus.Subscribe(bad, "inventory.batch_depleted")
		bus.Subscribe(good, "inventory.batch_depleted")

		require.NotPanics(t, func() {
			_ = bus.Publish(context.Background(), stubAlert("inventory.batch_depleted"))
		})
		assert.Equal(t, 1, good.count())
	})
}

func TestInMemoryEventBus_Subscribe_HandlerDeclaredTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zaptestLogger(t))
	h := &recordingHandler{types: []string{"inventory.stock_below_threshold"}}
	bus.Subscribe(h)

	require.NoError(t, bus.Publish(context.Background(), stubAlert("inventory.stock_below_threshold")))
	require.NoError(t, bus.Publish(context.Background(), stubAlert("inventory.batch_depleted")))

	assert.Equal(t, 1, h.count())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zaptestLogger(t))
	h := &recordingHandler{}
	bus.Subscribe(h, "inventory.batch_depleted")

	require.NoError(t, bus.Publish(context.Background(), stubAlert("inventory.batch_depleted")))
	require.Equal(t, 1, h.count())

	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(), stubAlert("inventory.batch_depleted")))
	assert.Equal(t, 1, h.count())
}
