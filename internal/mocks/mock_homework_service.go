package mocks

import (
	"context"

	"github.com/you/classhub/domain"
)

// MockHomeworkService implements domain.HomeworkService interface for testing
type MockHomeworkService struct {
	CreateFunc      func(ctx context.Context, actor domain.Actor, in domain.HomeworkInput) (*domain.Homework, error)
	GetFunc         func(ctx context.Context, id uint) (*domain.Homework, error)
	ListByClassFunc func(ctx context.Context, classID string) ([]*domain.Homework, error)
	UpdateFunc      func(ctx context.Context, actor domain.Actor, id uint, patch domain.HomeworkPatch) (*domain.Homework, error)
	DeleteFunc      func(ctx context.Context, actor domain.Actor, id uint) error
}

// NewMockHomeworkService creates a new MockHomeworkService
func NewMockHomeworkService() *MockHomeworkService {
	return &MockHomeworkService{}
}

func (m *MockHomeworkService) Create(ctx context.Context, actor domain.Actor, in domain.HomeworkInput) (*domain.Homework, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, in)
	}
	return &domain.Homework{
		ID:          1,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Files:       in.Files,
		CreatedBy:   actor.UserID,
		ClassID:     in.ClassID,
	}, nil
}

func (m *MockHomeworkService) Get(ctx context.Context, id uint) (*domain.Homework, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrHomeworkNotFound
}

func (m *MockHomeworkService) ListByClass(ctx context.Context, classID string) ([]*domain.Homework, error) {
	if m.ListByClassFunc != nil {
		return m.ListByClassFunc(ctx, classID)
	}
	return []*domain.Homework{}, nil
}

func (m *MockHomeworkService) Update(ctx context.Context, actor domain.Actor, id uint, patch domain.HomeworkPatch) (*domain.Homework, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, id, patch)
	}
	return nil, domain.ErrHomeworkNotFound
}

func (m *MockHomeworkService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, id)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.HomeworkService = (*MockHomeworkService)(nil)
