package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/classhub/domain"
	"github.com/you/classhub/internal/mocks"
)

func TestCompletionHandlers_Mark(t *testing.T) {
	svc := mocks.NewMockCompletionService()
	marked := map[[2]uint]bool{}
	svc.MarkFunc = func(ctx context.Context, homeworkID, studentID uint) (*domain.Completion, bool, error) {
		if homeworkID == 404 {
			return nil, false, domain.ErrHomeworkNotFound
		}
		key := [2]uint{homeworkID, studentID}
		c := &domain.Completion{ID: 1, HomeworkID: homeworkID, StudentID: studentID}
		if marked[key] {
			return c, true, nil
		}
		marked[key] = true
		return c, false, nil
	}

	r := newTestEngine()
	h := NewCompletionHandlers(svc)
	r.POST("/completion/mark", withActor(7, domain.RoleStudent), h.Mark)

	w := doJSON(t, r, http.MethodPost, "/completion/mark", MarkRequest{HomeworkID: 3})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(7), body["studentId"])
	assert.Nil(t, body["already"])

	w = doJSON(t, r, http.MethodPost, "/completion/mark", MarkRequest{HomeworkID: 3})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["already"])

	w = doJSON(t, r, http.MethodPost, "/completion/mark", MarkRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "homeworkId is required", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/completion/mark", MarkRequest{HomeworkID: 404})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompletionHandlers_Stats(t *testing.T) {
	svc := mocks.NewMockCompletionService()
	svc.StatsFunc = func(ctx context.Context, homeworkID uint) (int64, error) {
		return int64(homeworkID) * 2, nil
	}

	r := newTestEngine()
	h := NewCompletionHandlers(svc)
	r.GET("/completion/stats/:homeworkId", h.Stats)

	w := doJSON(t, r, http.MethodGet, "/completion/stats/4", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(8), decode(t, w)["count"])

	w = doJSON(t, r, http.MethodGet, "/completion/stats/zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
