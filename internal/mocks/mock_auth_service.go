package mocks

import (
	"context"
	"time"

	"github.com/you/classhub/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc   func(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error)
	LoginFunc      func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RequestOTPFunc func(ctx context.Context, email string) (*domain.OTPIssue, error)
	VerifyOTPFunc  func(ctx context.Context, email, code, handle string) (*domain.AuthResult, error)
	ProfileFunc    func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register returns a token for the submitted user
func (m *MockAuthService) Register(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return &domain.AuthResult{
		User: &domain.User{
			ID:        1,
			Name:      in.Name,
			Email:     in.Email,
			Role:      in.Role,
			ClassID:   in.ClassID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		AccessToken: "mock_access_token",
		ExpiresIn:   86400,
	}, nil
}

// Login returns a successful auth result
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.AuthResult{
		User:        &domain.User{ID: 1, Email: email, Role: domain.RoleStudent},
		AccessToken: "mock_access_token",
		ExpiresIn:   86400,
	}, nil
}

// RequestOTP issues a fixed handle
func (m *MockAuthService) RequestOTP(ctx context.Context, email string) (*domain.OTPIssue, error) {
	if m.RequestOTPFunc != nil {
		return m.RequestOTPFunc(ctx, email)
	}
	return &domain.OTPIssue{Handle: "mock-handle", TTLSeconds: 300}, nil
}

// VerifyOTP returns a successful auth result
func (m *MockAuthService) VerifyOTP(ctx context.Context, email, code, handle string) (*domain.AuthResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, email, code, handle)
	}
	return &domain.AuthResult{
		User:        &domain.User{ID: 1, Email: email, Role: domain.RoleStudent},
		AccessToken: "mock_access_token",
		ExpiresIn:   86400,
	}, nil
}

// Profile returns a student profile for userID
func (m *MockAuthService) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return &domain.User{
		ID:        userID,
		Name:      "Test User",
		Email:     "test@example.com",
		Role:      domain.RoleStudent,
		ClassID:   "10A",
		CreatedAt: time.Now().Add(-24 * time.Hour),
		UpdatedAt: time.Now(),
	}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
