package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/BruksfildServices01/med-directory/internal/config"
)

var ErrDisabled = errors.New("mail: smtp credentials not configured")

// Sender delivers a single message. Implementations must not log the body.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	from := cfg.EmailFrom
	if from == "" {
		from = cfg.EmailUser
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass),
		from:   from,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// DisabledSender fails every delivery; used when SMTP is not configured.
type DisabledSender struct{}

func (DisabledSender) Send(context.Context, string, string, string) error {
	return ErrDisabled
}

// New picks the SMTP sender when credentials are present.
func New(cfg *config.Config) Sender {
	if cfg.MailEnabled() {
		return NewSMTPSender(cfg)
	}
	return DisabledSender{}
}

func OTPBody(code string, ttl time.Duration) string {
	return fmt.Sprintf(`
		<p>Your verification code is:</p>
		<h2>%s</h2>
		<p>The code is valid for %d minutes. If you did not request it, ignore this e-mail.</p>
	`, code, int(ttl.Minutes()))
}
