package mail

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer delivers account verification codes.
type Mailer interface {
	SendVerificationCode(toEmail, code string) error
}

// SMTPConfig holds the SMTP connection settings.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	cfg    SMTPConfig
	logger zerolog.Logger
}

// NewSMTPMailer creates a mailer using the given SMTP settings.
func NewSMTPMailer(cfg SMTPConfig, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// SendVerificationCode emails a 6-digit verification code to the recipient.
func (m *SMTPMailer) SendVerificationCode(toEmail, code string) error {
	if m.cfg.Host == "" || m.cfg.From == "" {
		return fmt.Errorf("mail config missing")
	}
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("empty recipient")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Music Library - Email Verification")

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="text-align: center;">Welcome to Music Library!</h2>
    <p>Your verification code is:</p>
    <h1 style="text-align: center; font-size: 32px; letter-spacing: 5px;">%s</h1>
    <p style="font-size: 14px;">This code will expire in 10 minutes.</p>
    <p style="font-size: 12px;">If you didn't request this code, please ignore this email.</p>
  </div>
</body>
</html>`, code)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Pass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}

	m.logger.Info().Str("to", toEmail).Msg("verification email sent")
	return nil
}

// LogMailer writes verification codes to the log instead of sending mail.
// Used when no SMTP relay is configured, typically in development.
type LogMailer struct {
	logger zerolog.Logger
}

// NewLogMailer creates a Mailer that only logs.
func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendVerificationCode logs the code.
func (m *LogMailer) SendVerificationCode(toEmail, code string) error {
	m.logger.Warn().
		Str("to", toEmail).
		Str("code", code).
		Msg("SMTP not configured, verification code logged instead of sent")
	return nil
}
