package messaging

import (
	"context"
	"log/slog"
	"sync"

	"socialdesk/contexts/agency/campaign-service/ports"
)

// Bus is an in-process publish/subscribe fan-out. It backs the realtime
// campaign stream; publishing never blocks the caller, slow subscribers
// drop events.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan ports.Event
	logger      *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[string][]chan ports.Event),
		logger:      logger,
	}
}

func (b *Bus) Publish(ctx context.Context, topic string, event ports.Event) error {
	// Sends happen under the read lock so a concurrent cancel, which closes
	// the channel under the write lock, cannot close a channel mid-send.
	// Sends never block, so the lock is held only briefly.
	b.mu.RLock()
	for _, sub := range b.subscribers[topic] {
		select {
		case <-ctx.Done():
			b.mu.RUnlock()
			return ctx.Err()
		case sub <- event:
		default:
			if b.logger != nil {
				b.logger.Warn("dropping event for slow subscriber",
					"event", "bus_publish_drop",
					"module", "internal/platform/messaging",
					"layer", "platform",
					"topic", topic,
					"event_id", event.EventID,
				)
			}
		}
	}
	b.mu.RUnlock()

	if b.logger != nil {
		b.logger.Debug("event published",
			"event", "bus_publish",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"event_id", event.EventID,
			"event_type", event.EventType,
		)
	}
	return nil
}

// Subscribe registers a buffered channel on the topic. The returned cancel
// function removes the subscription and closes the channel.
func (b *Bus) Subscribe(topic string) (<-chan ports.Event, func()) {
	ch := make(chan ports.Event, 128)

	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			b.removeSubscriber(topic, ch)
			close(ch)
			b.mu.Unlock()
		})
	}
	return ch, cancel
}

// removeSubscriber must be called with b.mu held for writing.
func (b *Bus) removeSubscriber(topic string, target chan ports.Event) {
	items := b.subscribers[topic]
	if len(items) == 0 {
		return
	}
	filtered := make([]chan ports.Event, 0, len(items))
	for _, item := range items {
		if item != target {
			filtered = append(filtered, item)
		}
	}
	b.subscribers[topic] = filtered
}
