package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/classhub/domain"
	"github.com/you/classhub/internal/mocks"
)

func setupNotificationRouter(svc domain.NotificationService) *gin.Engine {
	r := newTestEngine()
	h := NewNotificationHandlers(svc)
	r.POST("/notification/send", h.Send)
	r.GET("/notification/user/:userId", h.List)
	r.PUT("/notification/mark-seen/:id", h.MarkSeen)
	return r
}

func TestNotificationHandlers_Send(t *testing.T) {
	svc := mocks.NewMockNotificationService()
	svc.SendFunc = func(ctx context.Context, toUserID uint, message string) (*domain.Notification, error) {
		if toUserID == 0 || message == "" {
			return nil, domain.ErrInvalidRequest
		}
		return &domain.Notification{ID: 3, ToUserID: toUserID, Message: message}, nil
	}
	r := setupNotificationRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/notification/send", SendRequest{ToUserID: 5, Message: "hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(5), body["toUserId"])
	assert.Equal(t, false, body["seen"])

	w = doJSON(t, r, http.MethodPost, "/notification/send", SendRequest{ToUserID: 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request", decode(t, w)["message"])
}

func TestNotificationHandlers_ListAndMarkSeen(t *testing.T) {
	svc := mocks.NewMockNotificationService()
	svc.ListForUserFunc = func(ctx context.Context, userID uint) ([]*domain.Notification, error) {
		return []*domain.Notification{{ID: 2, ToUserID: userID}, {ID: 1, ToUserID: userID}}, nil
	}
	svc.MarkSeenFunc = func(ctx context.Context, id uint) (*domain.Notification, error) {
		if id != 2 {
			return nil, domain.ErrNotificationNotFound
		}
		return &domain.Notification{ID: 2, Seen: true}, nil
	}
	r := setupNotificationRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/notification/user/5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []domain.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, uint(2), list[0].ID)

	w = doJSON(t, r, http.MethodPut, "/notification/mark-seen/2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["seen"])

	w = doJSON(t, r, http.MethodPut, "/notification/mark-seen/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Notification not found", decode(t, w)["message"])
}
