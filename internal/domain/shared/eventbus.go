package shared

import "context"

// EventHandler receives domain events from the bus. An empty EventTypes
// slice subscribes to everything.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher is the application-facing side of the bus. Delivery is
// best-effort: handler failures are logged, never returned to the
// publisher.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus adds subscription management for the composition root.
type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
}
