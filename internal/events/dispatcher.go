package events

import (
	"context"
	"sync"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher decouples event producers from their consumers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// memoryBus delivers events synchronously, in subscription order.
type memoryBus struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
}

// NewInMemoryDispatcher creates a process-local dispatcher.
func NewInMemoryDispatcher() Dispatcher {
	return &memoryBus{handlers: make(map[EventType][]EventHandler)}
}

func (b *memoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	subscribed := b.handlers[event.Type]
	snapshot := make([]EventHandler, len(subscribed))
	copy(snapshot, subscribed)
	b.mu.RUnlock()

	for _, handle := range snapshot {
		// a failing handler must not block delivery to the rest
		_ = handle(ctx, event)
	}
	return nil
}

func (b *memoryBus) Subscribe(eventType EventType, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
