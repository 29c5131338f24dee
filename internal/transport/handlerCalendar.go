package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mailmind/mailmind/internal/entity"
	"github.com/mailmind/mailmind/internal/service"
)

type CalendarHandler struct {
	calendar service.CalendarUseCase
}

func NewCalendarHandler(calendar service.CalendarUseCase) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// ListEvents returns events in the requested window; without query
// parameters the window is the coming week.
func (h *CalendarHandler) ListEvents(c *gin.Context) {
	if h.calendar == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "calendar is not configured"})
		return
	}

	now := time.Now().UTC()
	from, to := now, now.AddDate(0, 0, 7)

	if raw := c.Query("from"); raw != "" {
		parsed, err := entity.ParseTime(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := entity.ParseTime(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		to = parsed
	}

	events, err := h.calendar.ListEvents(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}
