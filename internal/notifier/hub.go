package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/mailmind/mailmind/internal/entity"
)

// Event is what subscribers of the in-process hub receive for each fired
// reminder.
type Event struct {
	Reminder *entity.Reminder `json:"reminder"`
	FiredAt  time.Time        `json:"fired_at"`
}

// Hub fans fired reminders out to connected desktop clients (the SSE stream
// endpoint subscribes here). Sends never block: a subscriber that cannot
// keep up loses events rather than stalling the due-check job.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[chan Event]struct{})}
}

// Subscribe registers a new listener and returns its channel together with
// an unsubscribe function. The channel is buffered so short bursts survive.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, unsubscribe
}

func (h *Hub) Notify(_ context.Context, reminder *entity.Reminder) error {
	event := Event{Reminder: reminder, FiredAt: time.Now().UTC()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber buffer full; drop instead of blocking the cycle.
		}
	}
	return nil
}

// SubscriberCount reports how many clients are currently connected.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
