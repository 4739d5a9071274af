package notifications

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ConsoleMailer prints OTP mails instead of sending them. Development only.
type ConsoleMailer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleMailer writes to out, or stdout when out is nil
func NewConsoleMailer(out io.Writer) *ConsoleMailer {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleMailer{out: out}
}

// SendOTP implements domain.Mailer
func (m *ConsoleMailer) SendOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	rendered, err := renderOTP(code, ttl)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, err = fmt.Fprintf(m.out, "[CONSOLE MAIL] To: %s\nSubject: %s\n\n%s\n", to, rendered.Subject, rendered.Text)
	return err
}
