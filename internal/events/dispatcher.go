package events

import (
	"context"
	"sync"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// inMemoryDispatcher fans events out to subscribed handlers. In async mode
// handlers run on their own goroutine so a publish never blocks the caller;
// handler errors are swallowed either way.
type inMemoryDispatcher struct {
	mu        sync.RWMutex
	async     bool
	listeners map[EventType][]EventHandler
}

// NewInMemoryDispatcher creates a dispatcher instance. Pass async=true for
// fire-and-forget delivery; synchronous delivery is deterministic for tests.
func NewInMemoryDispatcher(async bool) Dispatcher {
	return &inMemoryDispatcher{
		async:     async,
		listeners: make(map[EventType][]EventHandler),
	}
}

// Publish invokes handlers for the given event.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := append([]EventHandler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	if d.async {
		go runHandlers(context.WithoutCancel(ctx), handlers, event)
		return nil
	}
	runHandlers(ctx, handlers, event)
	return nil
}

// Subscribe registers a handler for the given event type.
func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}

func runHandlers(ctx context.Context, handlers []EventHandler, event Event) {
	for _, handler := range handlers {
		// handler failures must not affect the publisher or later handlers
		_ = handler(ctx, event)
	}
}
