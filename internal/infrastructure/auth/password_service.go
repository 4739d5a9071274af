package auth

import (
	"github.com/you/classhub/domain"
	"golang.org/x/crypto/bcrypt"
)

// PasswordServiceImpl implements domain.PasswordService with bcrypt
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a password service using bcrypt's default cost
func NewPasswordService() domain.PasswordService {
	return NewPasswordServiceWithCost(bcrypt.DefaultCost)
}

// NewPasswordServiceWithCost lets tests trade strength for speed
func NewPasswordServiceWithCost(cost int) domain.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify implements domain.PasswordService. Any comparison failure, including
// a malformed stored hash, counts as a mismatch.
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
