package transport

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/mailmind/mailmind/internal/notifier"
)

type NotificationHandler struct {
	hub *notifier.Hub
}

func NewNotificationHandler(hub *notifier.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// Stream pushes fired-reminder events to the client over server-sent
// events. The subscription lives until the client disconnects.
func (h *NotificationHandler) Stream(c *gin.Context) {
	events, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	c.Writer.Header().Set("Cache-Control", "no-cache")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("reminder", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
