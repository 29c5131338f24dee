package transport

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mailmind/mailmind/internal/entity"
	"github.com/mailmind/mailmind/internal/scheduler"
)

type SchedulerHandler struct {
	sched *scheduler.Scheduler
}

func NewSchedulerHandler(sched *scheduler.Scheduler) *SchedulerHandler {
	return &SchedulerHandler{sched: sched}
}

func (h *SchedulerHandler) Start(c *gin.Context) {
	h.sched.Start()
	c.JSON(http.StatusOK, gin.H{"running": true})
}

func (h *SchedulerHandler) Stop(c *gin.Context) {
	h.sched.Stop()
	c.JSON(http.StatusOK, gin.H{"running": false})
}

func (h *SchedulerHandler) Status(c *gin.Context) {
	status := gin.H{"running": h.sched.Running()}

	if last := h.sched.LastCycle(); last != nil {
		cycle := gin.H{
			"started_at": last.StartedAt.Format(time.RFC3339),
			"duration":   last.Duration.String(),
			"ingested":   last.Ingested,
			"fired":      last.Fired,
		}
		if last.SyncErr != nil {
			cycle["sync_error"] = last.SyncErr.Error()
		}
		if last.FireErr != nil {
			cycle["fire_error"] = last.FireErr.Error()
		}
		status["last_cycle"] = cycle
	}

	c.JSON(http.StatusOK, status)
}

// RunNow triggers a cycle outside the regular cadence, e.g. after the user
// hits refresh in the desktop client.
func (h *SchedulerHandler) RunNow(c *gin.Context) {
	result, err := h.sched.RunCycle(c.Request.Context())
	if err != nil {
		if errors.Is(err, entity.ErrCycleInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingested": result.Ingested,
		"fired":    result.Fired,
	})
}
