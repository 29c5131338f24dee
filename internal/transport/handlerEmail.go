package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mailmind/mailmind/internal/entity"
	"github.com/mailmind/mailmind/internal/service"
)

type EmailHandler struct {
	emails    service.EmailUseCase
	assistant service.AssistantUseCase
}

func NewEmailHandler(emails service.EmailUseCase, assistant service.AssistantUseCase) *EmailHandler {
	return &EmailHandler{emails: emails, assistant: assistant}
}

func (h *EmailHandler) ListEmails(c *gin.Context) {
	emails, err := h.emails.ListEmails(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"emails": emails,
		"count":  len(emails),
	})
}

func (h *EmailHandler) GetEmail(c *gin.Context) {
	email, err := h.emails.GetEmail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEmailError(c, err)
		return
	}
	c.JSON(http.StatusOK, email)
}

func (h *EmailHandler) SummarizeEmail(c *gin.Context) {
	if h.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI assistant is not configured"})
		return
	}

	summary, err := h.assistant.Summarize(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEmailError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

type draftRequest struct {
	Instructions string `json:"instructions"`
}

func (h *EmailHandler) DraftReply(c *gin.Context) {
	if h.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI assistant is not configured"})
		return
	}

	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.assistant.DraftReply(c.Request.Context(), c.Param("id"), req.Instructions)
	if err != nil {
		respondEmailError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func respondEmailError(c *gin.Context, err error) {
	if errors.Is(err, entity.ErrEmailNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
