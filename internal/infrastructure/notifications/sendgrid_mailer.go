package notifications

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/you/classhub/domain"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendGridMailer implements domain.Mailer with the SendGrid v3 API
type SendGridMailer struct {
	key  string
	host string
	from *sgmail.Email
}

// NewSendGridMailer validates the API key and the sender address
func NewSendGridMailer(apiKey, from string) (*SendGridMailer, error) {
	if apiKey == "" {
		return nil, domain.NewMailConfigurationError(errors.New("sendgrid api key is required"))
	}
	addr, err := mail.ParseAddress(from)
	if err != nil {
		return nil, domain.NewMailConfigurationError(fmt.Errorf("invalid sender %q: %w", from, err))
	}

	return &SendGridMailer{
		key:  apiKey,
		host: sendgridHost,
		from: sgmail.NewEmail(addr.Name, addr.Address),
	}, nil
}

// SendOTP implements domain.Mailer
func (m *SendGridMailer) SendOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	rendered, err := renderOTP(code, ttl)
	if err != nil {
		return domain.NewMailTransportError(err)
	}

	p := sgmail.NewPersonalization()
	p.Subject = rendered.Subject
	p.AddTos(sgmail.NewEmail("", to))

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(
		sgmail.NewContent("text/plain", rendered.Text),
		sgmail.NewContent("text/html", rendered.HTML),
	)

	req := sendgrid.GetRequest(m.key, sendgridEndpoint, m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(msg)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return domain.NewMailTransportError(err)
	}
	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		return domain.NewMailConfigurationError(fmt.Errorf("sendgrid rejected credentials: status %d", res.StatusCode))
	}
	if res.StatusCode >= http.StatusBadRequest {
		return domain.NewMailTransportError(fmt.Errorf("sendgrid status %d: %s", res.StatusCode, res.Body))
	}
	return nil
}
