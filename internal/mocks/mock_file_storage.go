package mocks

import (
	"context"

	"github.com/you/classhub/domain"
)

// MockFileStorage implements domain.FileStorage for testing
type MockFileStorage struct {
	SaveFunc func(ctx context.Context, name string, content []byte) (string, error)
	Saved    map[string][]byte
}

// NewMockFileStorage creates a new MockFileStorage
func NewMockFileStorage() *MockFileStorage {
	return &MockFileStorage{Saved: make(map[string][]byte)}
}

// Save keeps content in memory under /uploads/<name>
func (m *MockFileStorage) Save(ctx context.Context, name string, content []byte) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, name, content)
	}
	path := "/uploads/" + name
	m.Saved[path] = content
	return path, nil
}

// Compile-time interface compliance verification
var _ domain.FileStorage = (*MockFileStorage)(nil)
