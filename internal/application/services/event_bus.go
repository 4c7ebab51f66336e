package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Andtit4/site-database-sub001/internal/domain/events"
	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
)

// EventType is an alias to the domain type
type EventType = events.EventType

// EventHandler is a function that handles an event
type EventHandler = ports.EventHandler

type subscription struct {
	id      uint64
	handler EventHandler
}

// EventBus is an in-process publish-subscribe bus. Handlers run synchronously
// in subscription order.
type EventBus struct {
	handlers map[EventType][]subscription
	nextID   uint64
	mu       sync.RWMutex
}

// Ensure EventBus implements ports.EventPublisher at compile time
var _ ports.EventPublisher = (*EventBus)(nil)

// NewEventBus creates a new EventBus instance
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]subscription),
	}
}

// Subscribe registers a handler for a specific event type.
// Returns an unsubscribe function.
func (eb *EventBus) Subscribe(eventType EventType, handler EventHandler) func() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	id := eb.nextID
	eb.handlers[eventType] = append(eb.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()

		subs := eb.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				eb.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Publish publishes an event to all registered handlers and stops at the first failure
func (eb *EventBus) Publish(ctx context.Context, eventType EventType, payload interface{}) error {
	eb.mu.RLock()
	subs := eb.handlers[eventType]
	eb.mu.RUnlock()

	for _, s := range subs {
		if err := s.handler(ctx, payload); err != nil {
			return fmt.Errorf("EventBus handler error for %s: %w", eventType, err)
		}
	}
	return nil
}

// publishBestEffort logs handler failures instead of returning them. Used after
// the schema change is already committed, when failing the request would lie.
func publishBestEffort(ctx context.Context, bus ports.EventPublisher, eventType EventType, payload interface{}) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, eventType, payload); err != nil {
		log.Printf("⚠️ %v", err)
	}
}
