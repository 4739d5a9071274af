package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/classhub/domain"
)

// CompletionHandlers handles completion HTTP requests
type CompletionHandlers struct {
	completionSvc domain.CompletionService
}

// NewCompletionHandlers creates new completion handlers
func NewCompletionHandlers(completionSvc domain.CompletionService) *CompletionHandlers {
	return &CompletionHandlers{completionSvc: completionSvc}
}

// MarkRequest represents a completion request. The student is the caller.
type MarkRequest struct {
	HomeworkID uint `json:"homeworkId"`
}

// Mark records that the caller finished a homework
func (h *CompletionHandlers) Mark(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.HomeworkID == 0 {
		badRequest(c, "homeworkId is required")
		return
	}

	completion, already, err := h.completionSvc.Mark(c.Request.Context(), req.HomeworkID, actor.UserID)
	if err != nil {
		respondError(c, "COMPLETION_MARK_FAILED", err)
		return
	}

	if already {
		c.JSON(http.StatusOK, gin.H{"already": true, "completion": completion})
		return
	}
	c.JSON(http.StatusCreated, completion)
}

// Stats returns how many students completed a homework
func (h *CompletionHandlers) Stats(c *gin.Context) {
	id, ok := parseID(c, "homeworkId")
	if !ok {
		return
	}

	count, err := h.completionSvc.Stats(c.Request.Context(), id)
	if err != nil {
		respondError(c, "COMPLETION_STATS_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
