package mocks

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/you/classhub/domain"
)

// MockTokenService implements domain.TokenService interface for testing.
// Default tokens look like "token:<id>:<role>:<class>" and validate back to
// the same claims.
type MockTokenService struct {
	GenerateAccessTokenFunc func(user *domain.User) (string, error)
	ValidateAccessTokenFunc func(token string) (*domain.TokenClaims, error)
	TTLValue                time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{TTLValue: 24 * time.Hour}
}

// GenerateAccessToken encodes the user into a readable fake token
func (m *MockTokenService) GenerateAccessToken(user *domain.User) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(user)
	}
	return fmt.Sprintf("token:%d:%s:%s", user.ID, user.Role, user.ClassID), nil
}

// ValidateAccessToken decodes tokens produced by GenerateAccessToken
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}

	parts := strings.SplitN(token, ":", 4)
	if len(parts) != 4 || parts[0] != "token" {
		return nil, domain.ErrTokenInvalid
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	now := time.Now()
	return &domain.TokenClaims{
		UserID:    uint(id),
		Role:      parts[2],
		ClassID:   parts[3],
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(m.TTL()).Unix(),
	}, nil
}

// TTL returns TTLValue
func (m *MockTokenService) TTL() time.Duration {
	return m.TTLValue
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
