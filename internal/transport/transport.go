package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mailmind/mailmind/internal/notifier"
	"github.com/mailmind/mailmind/internal/scheduler"
	"github.com/mailmind/mailmind/internal/service"
	"github.com/mailmind/mailmind/internal/transport/middleware"
)

// InitRoutes wires the REST and SSE surface consumed by the desktop client.
// The assistant and calendar arguments may be nil when the corresponding
// integration is disabled.
func InitRoutes(
	reminders service.ReminderUseCase,
	emails service.EmailUseCase,
	assistant service.AssistantUseCase,
	calendar service.CalendarUseCase,
	sched *scheduler.Scheduler,
	hub *notifier.Hub,
	requestTimeout time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger())

	reminderHandler := NewReminderHandler(reminders)
	emailHandler := NewEmailHandler(emails, assistant)
	calendarHandler := NewCalendarHandler(calendar)
	schedulerHandler := NewSchedulerHandler(sched)
	notificationHandler := NewNotificationHandler(hub)

	api := router.Group("/api/v1")
	api.Use(middleware.Timeout(requestTimeout))
	{
		api.POST("/reminders", reminderHandler.CreateReminder)
		api.GET("/reminders", reminderHandler.ListReminders)
		api.GET("/reminders/:id", reminderHandler.GetReminder)
		api.PATCH("/reminders/:id", reminderHandler.UpdateReminder)
		api.DELETE("/reminders/:id", reminderHandler.DeleteReminder)

		api.GET("/emails", emailHandler.ListEmails)
		api.GET("/emails/:id", emailHandler.GetEmail)
		api.POST("/emails/:id/summary", emailHandler.SummarizeEmail)
		api.POST("/emails/:id/draft", emailHandler.DraftReply)

		api.GET("/calendar/events", calendarHandler.ListEvents)

		api.POST("/scheduler/start", schedulerHandler.Start)
		api.POST("/scheduler/stop", schedulerHandler.Stop)
		api.GET("/scheduler/status", schedulerHandler.Status)
		api.POST("/scheduler/run", schedulerHandler.RunNow)
	}

	// Long-lived stream, deliberately outside the timeout middleware.
	router.GET("/api/v1/notifications/stream", notificationHandler.Stream)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "mailmind-backend",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	return router
}
