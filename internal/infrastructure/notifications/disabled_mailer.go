package notifications

import (
	"context"
	"time"

	"github.com/you/classhub/domain"
)

// DisabledMailer stands in when no mail provider could be built. Every send
// reports the startup configuration error.
type DisabledMailer struct {
	cause error
}

// NewDisabledMailer keeps cause for later sends
func NewDisabledMailer(cause error) *DisabledMailer {
	return &DisabledMailer{cause: cause}
}

// SendOTP implements domain.Mailer
func (m *DisabledMailer) SendOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	return domain.NewMailConfigurationError(m.cause)
}
