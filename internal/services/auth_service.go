package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/you/classhub/domain"
)

const minPasswordLength = 6

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService

	// dummyHash is compared against on an unknown email so both login
	// failures cost one hash check
	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = domain.NormalizeEmail(in.Email)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	in.ClassID = strings.TrimSpace(in.ClassID)

	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidRequest
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, domain.ErrInvalidRequest
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}
	if in.Role == domain.RoleStudent && in.ClassID == "" {
		return nil, domain.ErrInvalidRequest
	}

	// Check if user already exists
	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashedPassword,
		Role:         in.Role,
		ClassID:      in.ClassID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The repository reports a lost race on the unique email as ErrUserAlreadyExists
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

// Login implements domain.AuthService. Unknown email and wrong password fail
// with the same error.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidRequest
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.passwordSvc.Verify(s.loginDummyHash(), password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthServiceImpl) loginDummyHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.passwordSvc.Hash("classhub-login-placeholder")
		if err != nil {
			log.Printf("LOGIN_DUMMY_HASH_FAILED: error=%v", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// RequestOTP implements domain.AuthService
func (s *AuthServiceImpl) RequestOTP(ctx context.Context, email string) (*domain.OTPIssue, error) {
	return s.otpSvc.Request(ctx, email)
}

// VerifyOTP implements domain.AuthService
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, email, code, handle string) (*domain.AuthResult, error) {
	user, err := s.otpSvc.Verify(ctx, email, code, handle)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Profile implements domain.AuthService
func (s *AuthServiceImpl) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthServiceImpl) issue(user *domain.User) (*domain.AuthResult, error) {
	token, err := s.tokenSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(s.tokenSvc.TTL() / time.Second),
	}, nil
}
