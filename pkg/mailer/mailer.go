package mailer

import (
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/noah-isme/aews-api/pkg/config"
)

// Dialer abstracts the SMTP transport so tests can capture outgoing messages.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends transactional email through an SMTP relay. Send failures are
// reported to the caller as a boolean plus error message and must never abort
// the business operation that triggered them.
type Mailer struct {
	cfg    config.SMTPConfig
	dialer Dialer
	logger *zap.Logger
}

// New constructs a Mailer. A nil dialer builds a gomail dialer from config.
func New(cfg config.SMTPConfig, dialer Dialer, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dialer == nil && cfg.Username != "" && cfg.Password != "" {
		dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return &Mailer{cfg: cfg, dialer: dialer, logger: logger}
}

// Configured reports whether SMTP credentials are present. No secrets leak.
func (m *Mailer) Configured() bool {
	return m != nil && m.cfg.Username != "" && m.cfg.Password != ""
}

// SendVerification mails the email-confirmation link (valid 24 hours).
func (m *Mailer) SendVerification(to, link, name string) (bool, string) {
	subject, plain, html := verificationContent(link, name)
	return m.send(to, subject, plain, html)
}

// SendPasswordReset mails the password-reset link (valid 1 hour).
func (m *Mailer) SendPasswordReset(to, link, name string) (bool, string) {
	subject, plain, html := passwordResetContent(link, name)
	return m.send(to, subject, plain, html)
}

// SendAccountDecision mails the approval or decline notice for a pending account.
func (m *Mailer) SendAccountDecision(to, name string, approved bool) (bool, string) {
	subject, plain, html := accountDecisionContent(name, approved)
	return m.send(to, subject, plain, html)
}

func (m *Mailer) send(to, subject, plain, html string) (bool, string) {
	if !m.Configured() || m.dialer == nil {
		msg := "smtp not configured: set SMTP_USER and SMTP_PASSWORD"
		m.logger.Warn("email not sent", zap.String("to", to), zap.String("reason", msg))
		return false, msg
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plain)
	msg.AddAlternative("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Warn("email delivery failed", zap.String("to", to), zap.Error(err))
		return false, err.Error()
	}

	m.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return true, ""
}
