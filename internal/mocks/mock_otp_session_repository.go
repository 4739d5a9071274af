package mocks

import (
	"context"
	"sync"

	"github.com/you/classhub/domain"
)

// MockOTPSessionRepository implements domain.OTPSessionRepository for testing.
// Without overrides it behaves like an in-memory store keyed by handle with
// one live session per email.
type MockOTPSessionRepository struct {
	UpsertFunc        func(ctx context.Context, session *domain.OTPSession) error
	FindByHandleFunc  func(ctx context.Context, handle string) (*domain.OTPSession, error)
	ConsumeFunc       func(ctx context.Context, session *domain.OTPSession) (bool, error)
	RecordFailureFunc func(ctx context.Context, session *domain.OTPSession) (int64, error)

	mu       sync.Mutex
	byHandle map[string]domain.OTPSession
	byEmail  map[string]string
	failures map[string]int64
}

// NewMockOTPSessionRepository creates a new MockOTPSessionRepository
func NewMockOTPSessionRepository() *MockOTPSessionRepository {
	return &MockOTPSessionRepository{
		byHandle: make(map[string]domain.OTPSession),
		byEmail:  make(map[string]string),
		failures: make(map[string]int64),
	}
}

// Upsert stores the session, replacing any previous one for the same email
func (m *MockOTPSessionRepository) Upsert(ctx context.Context, session *domain.OTPSession) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.byEmail[session.Email]; ok {
		delete(m.byHandle, old)
	}
	m.byHandle[session.Handle] = *session
	m.byEmail[session.Email] = session.Handle
	return nil
}

// FindByHandle returns a copy of the stored session
func (m *MockOTPSessionRepository) FindByHandle(ctx context.Context, handle string) (*domain.OTPSession, error) {
	if m.FindByHandleFunc != nil {
		return m.FindByHandleFunc(ctx, handle)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byHandle[handle]
	if !ok {
		return nil, domain.ErrInvalidSession
	}
	return &s, nil
}

// Consume removes the session and reports whether it was still present
func (m *MockOTPSessionRepository) Consume(ctx context.Context, session *domain.OTPSession) (bool, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byHandle[session.Handle]; !ok {
		return false, nil
	}
	delete(m.byHandle, session.Handle)
	delete(m.failures, session.Handle)
	if m.byEmail[session.Email] == session.Handle {
		delete(m.byEmail, session.Email)
	}
	return true, nil
}

// RecordFailure counts a failed attempt for a stored session
func (m *MockOTPSessionRepository) RecordFailure(ctx context.Context, session *domain.OTPSession) (int64, error) {
	if m.RecordFailureFunc != nil {
		return m.RecordFailureFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byHandle[session.Handle]; !ok {
		return 0, nil
	}
	m.failures[session.Handle]++
	return m.failures[session.Handle], nil
}

// Len returns the number of stored sessions
func (m *MockOTPSessionRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byHandle)
}

// Compile-time interface compliance verification
var _ domain.OTPSessionRepository = (*MockOTPSessionRepository)(nil)
