package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mailmind/mailmind/internal/entity"
	"github.com/mailmind/mailmind/internal/service"
)

type ReminderHandler struct {
	service service.ReminderUseCase
}

func NewReminderHandler(service service.ReminderUseCase) *ReminderHandler {
	return &ReminderHandler{service: service}
}

func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	var req entity.ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder, err := h.service.CreateReminder(c.Request.Context(), &req)
	if err != nil {
		respondReminderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

func (h *ReminderHandler) GetReminder(c *gin.Context) {
	reminder, err := h.service.GetReminder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondReminderError(c, err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func (h *ReminderHandler) ListReminders(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"
	emailID := c.Query("email_id")

	reminders, err := h.service.ListReminders(c.Request.Context(), activeOnly, emailID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reminders": reminders,
		"count":     len(reminders),
	})
}

func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	var upd entity.ReminderUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder, err := h.service.UpdateReminder(c.Request.Context(), c.Param("id"), &upd)
	if err != nil {
		respondReminderError(c, err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	deleted, err := h.service.DeleteReminder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func respondReminderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrReminderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrInvalidDueAt):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
