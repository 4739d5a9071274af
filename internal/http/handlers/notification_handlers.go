package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/classhub/domain"
)

// NotificationHandlers handles notification HTTP requests
type NotificationHandlers struct {
	notificationSvc domain.NotificationService
}

// NewNotificationHandlers creates new notification handlers
func NewNotificationHandlers(notificationSvc domain.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{notificationSvc: notificationSvc}
}

// SendRequest represents a notification send request
type SendRequest struct {
	ToUserID uint   `json:"toUserId"`
	Message  string `json:"message"`
}

// Send stores a notification and pushes it to the recipient
func (h *NotificationHandlers) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	note, err := h.notificationSvc.Send(c.Request.Context(), req.ToUserID, req.Message)
	if err != nil {
		respondError(c, "NOTIFICATION_SEND_FAILED", err)
		return
	}

	c.JSON(http.StatusCreated, note)
}

// List returns a user's notifications, newest first
func (h *NotificationHandlers) List(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	notes, err := h.notificationSvc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "NOTIFICATION_LIST_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

// MarkSeen flags a notification as seen
func (h *NotificationHandlers) MarkSeen(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	note, err := h.notificationSvc.MarkSeen(c.Request.Context(), id)
	if err != nil {
		respondError(c, "NOTIFICATION_MARK_SEEN_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, note)
}
