package mocks

import (
	"context"

	"github.com/you/classhub/domain"
)

// MockHomeworkRepository implements domain.HomeworkRepository for testing
type MockHomeworkRepository struct {
	CreateFunc      func(ctx context.Context, hw *domain.Homework) error
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.Homework, error)
	ListByClassFunc func(ctx context.Context, classID string) ([]*domain.Homework, error)
	UpdateFunc      func(ctx context.Context, hw *domain.Homework) error
	DeleteFunc      func(ctx context.Context, id uint) error
}

// NewMockHomeworkRepository creates a new MockHomeworkRepository
func NewMockHomeworkRepository() *MockHomeworkRepository {
	return &MockHomeworkRepository{}
}

func (m *MockHomeworkRepository) Create(ctx context.Context, hw *domain.Homework) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, hw)
	}
	// Default behavior: assign an ID
	if hw.ID == 0 {
		hw.ID = 1
	}
	return nil
}

func (m *MockHomeworkRepository) FindByID(ctx context.Context, id uint) (*domain.Homework, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrHomeworkNotFound
}

func (m *MockHomeworkRepository) ListByClass(ctx context.Context, classID string) ([]*domain.Homework, error) {
	if m.ListByClassFunc != nil {
		return m.ListByClassFunc(ctx, classID)
	}
	return []*domain.Homework{}, nil
}

func (m *MockHomeworkRepository) Update(ctx context.Context, hw *domain.Homework) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, hw)
	}
	return nil
}

func (m *MockHomeworkRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.HomeworkRepository = (*MockHomeworkRepository)(nil)
