package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/you/classhub/domain"
)

// SentOTP is one mail captured by MockMailer
type SentOTP struct {
	To   string
	Code string
	TTL  time.Duration
}

// MockMailer implements domain.Mailer and records every send
type MockMailer struct {
	SendOTPFunc func(ctx context.Context, to, code string, ttl time.Duration) error

	mu   sync.Mutex
	sent []SentOTP
}

// NewMockMailer creates a new MockMailer
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// SendOTP records the mail, then defers to SendOTPFunc when set
func (m *MockMailer) SendOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	m.mu.Lock()
	m.sent = append(m.sent, SentOTP{To: to, Code: code, TTL: ttl})
	m.mu.Unlock()

	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, to, code, ttl)
	}
	return nil
}

// Sent returns a copy of the recorded mails
func (m *MockMailer) Sent() []SentOTP {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentOTP(nil), m.sent...)
}

// LastCode returns the code of the most recent mail to addr
func (m *MockMailer) LastCode(addr string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].To == addr {
			return m.sent[i].Code
		}
	}
	return ""
}

// Compile-time interface compliance verification
var _ domain.Mailer = (*MockMailer)(nil)
