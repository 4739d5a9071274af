package mocks

import (
	"context"

	"github.com/you/classhub/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	RequestFunc func(ctx context.Context, email string) (*domain.OTPIssue, error)
	VerifyFunc  func(ctx context.Context, email, code, handle string) (*domain.User, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Request issues a fixed handle
func (m *MockOTPService) Request(ctx context.Context, email string) (*domain.OTPIssue, error) {
	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, email)
	}
	return &domain.OTPIssue{Handle: "mock-handle", TTLSeconds: 300}, nil
}

// Verify accepts "123456" for "mock-handle"
func (m *MockOTPService) Verify(ctx context.Context, email, code, handle string) (*domain.User, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, code, handle)
	}
	if handle != "mock-handle" {
		return nil, domain.ErrInvalidSession
	}
	if code != "123456" {
		return nil, domain.ErrOTPInvalid
	}
	return &domain.User{ID: 1, Email: email, Role: domain.RoleStudent}, nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
