package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailmind/mailmind/internal/entity"
)

func TestHubFanOut(t *testing.T) {
	hub := NewHub()

	first, unsubFirst := hub.Subscribe()
	second, unsubSecond := hub.Subscribe()
	defer unsubFirst()
	defer unsubSecond()

	require.Equal(t, 2, hub.SubscriberCount())

	reminder := &entity.Reminder{ID: "r-1", Message: "ping"}
	require.NoError(t, hub.Notify(context.Background(), reminder))

	for _, ch := range []<-chan Event{first, second} {
		select {
		case event := <-ch:
			assert.Equal(t, "r-1", event.Reminder.ID)
			assert.False(t, event.FiredAt.IsZero())
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe()
	unsubscribe()
	assert.Equal(t, 0, hub.SubscriberCount())

	// Unsubscribing twice must not panic on a closed channel.
	unsubscribe()

	_, open := <-ch
	assert.False(t, open)
}

func TestHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	// Nobody reads: once the buffer fills, further sends are dropped and
	// Notify keeps returning promptly.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			_ = hub.Notify(context.Background(), &entity.Reminder{ID: "flood"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a slow subscriber")
	}
}

func TestHubNotifyWithoutSubscribers(t *testing.T) {
	hub := NewHub()
	assert.NoError(t, hub.Notify(context.Background(), &entity.Reminder{ID: "r-1"}))
}
