package notifications

import (
	"context"
	"errors"
	"time"

	"github.com/wneessen/go-mail"
	"github.com/you/classhub/domain"
)

// SMTPConfig holds the settings of the outbound SMTP relay
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer implements domain.Mailer over SMTP
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer builds the SMTP client. Missing host, credentials or sender
// are reported as a configuration MailError.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" || cfg.From == "" {
		return nil, domain.NewMailConfigurationError(errors.New("smtp host, credentials and sender are required"))
	}

	opts := []mail.Option{
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTimeout(10 * time.Second),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithPort(cfg.Port), mail.WithSSL())
	} else {
		if cfg.Port == 0 {
			cfg.Port = 587
		}
		opts = append(opts, mail.WithPort(cfg.Port), mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, domain.NewMailConfigurationError(err)
	}

	return &SMTPMailer{client: client, from: cfg.From}, nil
}

// SendOTP implements domain.Mailer
func (m *SMTPMailer) SendOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	rendered, err := renderOTP(code, ttl)
	if err != nil {
		return domain.NewMailTransportError(err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return domain.NewMailConfigurationError(err)
	}
	if err := msg.To(to); err != nil {
		return domain.NewMailTransportError(err)
	}
	msg.Subject(rendered.Subject)
	msg.SetBodyString(mail.TypeTextPlain, rendered.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, rendered.HTML)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return domain.NewMailTransportError(err)
	}
	return nil
}
