package mocks

import (
	"context"
	"time"

	"github.com/you/classhub/domain"
)

// MockCompletionService implements domain.CompletionService interface for testing
type MockCompletionService struct {
	MarkFunc  func(ctx context.Context, homeworkID, studentID uint) (*domain.Completion, bool, error)
	StatsFunc func(ctx context.Context, homeworkID uint) (int64, error)
}

// NewMockCompletionService creates a new MockCompletionService
func NewMockCompletionService() *MockCompletionService {
	return &MockCompletionService{}
}

func (m *MockCompletionService) Mark(ctx context.Context, homeworkID, studentID uint) (*domain.Completion, bool, error) {
	if m.MarkFunc != nil {
		return m.MarkFunc(ctx, homeworkID, studentID)
	}
	return &domain.Completion{ID: 1, HomeworkID: homeworkID, StudentID: studentID, CompletedAt: time.Now()}, false, nil
}

func (m *MockCompletionService) Stats(ctx context.Context, homeworkID uint) (int64, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, homeworkID)
	}
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.CompletionService = (*MockCompletionService)(nil)
