package shared

import "context"

// EventHandler reacts to domain events after the transaction that
// produced them has committed.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes names the event types the handler wants.
	// An empty slice subscribes the handler to every event.
	EventTypes() []string
}

// EventPublisher delivers committed domain events to subscribers.
// Application services depend on this interface only; the in-memory
// bus in infrastructure/event is the single implementation.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus adds subscription management on top of publishing
type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}
