package notifications

import (
	"fmt"
	"io"

	"github.com/you/classhub/domain"
	"github.com/you/classhub/internal/config"
)

// NewMailer builds the mailer selected by cfg.Provider. When the provider
// cannot be built the returned mailer is a DisabledMailer and the error
// explains why, so the caller can log it and keep serving.
func NewMailer(cfg config.MailConfig, console io.Writer) (domain.Mailer, error) {
	var (
		mailer domain.Mailer
		err    error
	)

	switch cfg.Provider {
	case "console":
		return NewConsoleMailer(console), nil
	case "sendgrid":
		mailer, err = NewSendGridMailer(cfg.SendgridKey, cfg.From)
	case "smtp", "":
		mailer, err = NewSMTPMailer(SMTPConfig{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Username: cfg.Username,
			Password: cfg.Password,
			From:     cfg.From,
		})
	default:
		err = domain.NewMailConfigurationError(fmt.Errorf("unknown mail provider %q", cfg.Provider))
	}

	if err != nil {
		return NewDisabledMailer(err), err
	}
	return mailer, nil
}
