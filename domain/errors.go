package domain

import (
	"errors"
	"fmt"
)

// Request errors
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidRole    = errors.New("role must be teacher or student")
	ErrWeakPassword   = errors.New("password must be at least 6 characters")
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// OTP errors
var (
	ErrInvalidSession = errors.New("invalid or expired session")
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPInvalid     = errors.New("invalid otp code")

	ErrOTPAttemptsExceeded = errors.New("too many invalid otp attempts")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("insufficient role permissions")
)

// Resource errors
var (
	ErrHomeworkNotFound     = errors.New("homework not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrCompletionNotFound   = errors.New("completion not found")
)

// ErrNotificationUnavailable matches every *MailError via errors.Is
var ErrNotificationUnavailable = errors.New("notification channel unavailable")

// MailErrorKind tells a mail misconfiguration apart from a delivery failure
type MailErrorKind string

const (
	MailConfigurationError MailErrorKind = "configuration"
	MailTransportError     MailErrorKind = "transport"
)

// MailError is returned by Mailer implementations
type MailError struct {
	Kind MailErrorKind
	Err  error
}

// NewMailConfigurationError wraps err as a configuration failure
func NewMailConfigurationError(err error) *MailError {
	return &MailError{Kind: MailConfigurationError, Err: err}
}

// NewMailTransportError wraps err as a delivery failure
func NewMailTransportError(err error) *MailError {
	return &MailError{Kind: MailTransportError, Err: err}
}

func (e *MailError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("mail %s error", e.Kind)
	}
	return fmt.Sprintf("mail %s error: %v", e.Kind, e.Err)
}

func (e *MailError) Unwrap() error {
	return e.Err
}

func (e *MailError) Is(target error) bool {
	return target == ErrNotificationUnavailable
}

// IsMailConfigurationError reports whether err carries a configuration MailError
func IsMailConfigurationError(err error) bool {
	var me *MailError
	return errors.As(err, &me) && me.Kind == MailConfigurationError
}
