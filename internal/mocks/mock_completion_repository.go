package mocks

import (
	"context"

	"github.com/you/classhub/domain"
)

// MockCompletionRepository implements domain.CompletionRepository for testing
type MockCompletionRepository struct {
	CreateIfAbsentFunc  func(ctx context.Context, c *domain.Completion) (bool, error)
	FindFunc            func(ctx context.Context, homeworkID, studentID uint) (*domain.Completion, error)
	CountByHomeworkFunc func(ctx context.Context, homeworkID uint) (int64, error)
}

// NewMockCompletionRepository creates a new MockCompletionRepository
func NewMockCompletionRepository() *MockCompletionRepository {
	return &MockCompletionRepository{}
}

func (m *MockCompletionRepository) CreateIfAbsent(ctx context.Context, c *domain.Completion) (bool, error) {
	if m.CreateIfAbsentFunc != nil {
		return m.CreateIfAbsentFunc(ctx, c)
	}
	// Default behavior: inserted
	return true, nil
}

func (m *MockCompletionRepository) Find(ctx context.Context, homeworkID, studentID uint) (*domain.Completion, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, homeworkID, studentID)
	}
	return nil, domain.ErrCompletionNotFound
}

func (m *MockCompletionRepository) CountByHomework(ctx context.Context, homeworkID uint) (int64, error) {
	if m.CountByHomeworkFunc != nil {
		return m.CountByHomeworkFunc(ctx, homeworkID)
	}
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.CompletionRepository = (*MockCompletionRepository)(nil)
