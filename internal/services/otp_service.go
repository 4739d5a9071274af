package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/you/classhub/domain"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// OTPServiceImpl implements domain.OTPService on top of an OTPSessionRepository
type OTPServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.OTPSessionRepository
	mailer      domain.Mailer
	config      OTPConfig
	now         func() time.Time
}

type OTPConfig struct {
	TTL time.Duration
	// MaxAttempts is how many wrong codes a session survives
	MaxAttempts int
}

// NewOTPService creates a new OTP service
func NewOTPService(userRepo domain.UserRepository, sessionRepo domain.OTPSessionRepository, mailer domain.Mailer, config OTPConfig) domain.OTPService {
	if config.TTL <= 0 {
		config.TTL = 5 * time.Minute
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 5
	}
	return &OTPServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		mailer:      mailer,
		config:      config,
		now:         time.Now,
	}
}

// Request implements domain.OTPService. The session is stored before the
// mail is sent; a mail failure returns the issue together with the error and
// leaves the session in place.
func (s *OTPServiceImpl) Request(ctx context.Context, email string) (*domain.OTPIssue, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrInvalidRequest
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		return nil, err
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	session := &domain.OTPSession{
		Email:     email,
		Code:      code,
		Handle:    uuid.NewString(),
		ExpiresAt: s.now().Add(s.config.TTL),
	}
	if err := s.sessionRepo.Upsert(ctx, session); err != nil {
		return nil, err
	}

	issue := &domain.OTPIssue{
		Handle:     session.Handle,
		TTLSeconds: int64(s.config.TTL / time.Second),
	}

	if err := s.mailer.SendOTP(ctx, email, code, s.config.TTL); err != nil {
		log.Printf("OTP_MAIL_FAILED: email=%s handle=%s err=%v", email, session.Handle, err)
		return issue, fmt.Errorf("failed to send OTP: %w", err)
	}

	return issue, nil
}

// Verify implements domain.OTPService. Checks run in a fixed order: session
// lookup, email match, expiry, then code. A successful check consumes the
// session, so a handle can be used once. After MaxAttempts wrong codes the
// session is dropped as well.
func (s *OTPServiceImpl) Verify(ctx context.Context, email, code, handle string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	handle = strings.TrimSpace(handle)
	if email == "" || code == "" || handle == "" {
		return nil, domain.ErrInvalidRequest
	}

	session, err := s.sessionRepo.FindByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	if session.Email != email {
		return nil, domain.ErrInvalidSession
	}
	if session.ExpiredAt(s.now()) {
		return nil, domain.ErrOTPExpired
	}
	if subtle.ConstantTimeCompare([]byte(session.Code), []byte(code)) != 1 {
		return nil, s.recordFailure(ctx, session)
	}

	consumed, err := s.sessionRepo.Consume(ctx, session)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, domain.ErrInvalidSession
	}

	return s.userRepo.FindByEmail(ctx, email)
}

// recordFailure counts a wrong code and drops the session once the attempts
// are used up
func (s *OTPServiceImpl) recordFailure(ctx context.Context, session *domain.OTPSession) error {
	n, err := s.sessionRepo.RecordFailure(ctx, session)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInvalidSession
	}
	if n < int64(s.config.MaxAttempts) {
		return domain.ErrOTPInvalid
	}

	if _, err := s.sessionRepo.Consume(ctx, session); err != nil {
		return err
	}
	log.Printf("OTP_ATTEMPTS_EXCEEDED: email=%s handle=%s attempts=%d", session.Email, session.Handle, n)
	return domain.ErrOTPAttemptsExceeded
}

// generateCode returns a uniformly random code in [otpMin, otpMax]
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}
