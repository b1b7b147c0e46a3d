package mailer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/gomail.v2"

	"github.com/noah-isme/aews-api/pkg/config"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func configured() config.SMTPConfig {
	return config.SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "relay@example.com", Password: "secret", From: "relay@example.com"}
}

func TestMailerNotConfigured(t *testing.T) {
	m := New(config.SMTPConfig{}, nil, nil)

	assert.False(t, m.Configured())

	ok, msg := m.SendVerification("user@example.com", "http://app/verify-email?token=x", "User")
	assert.False(t, ok)
	assert.Contains(t, msg, "smtp not configured")
}

func TestMailerSendVerification(t *testing.T) {
	dialer := &fakeDialer{}
	m := New(configured(), dialer, nil)

	ok, msg := m.SendVerification("user@example.com", "http://app/verify-email?token=x", "User")
	require.True(t, ok)
	assert.Empty(t, msg)
	require.Len(t, dialer.sent, 1)
	assert.Equal(t, []string{"user@example.com"}, dialer.sent[0].GetHeader("To"))
	assert.Contains(t, dialer.sent[0].GetHeader("Subject")[0], "Confirm your email")
}

func TestMailerSendFailureIsNonFatal(t *testing.T) {
	dialer := &fakeDialer{err: errors.New("connection refused")}
	m := New(configured(), dialer, nil)

	ok, msg := m.SendPasswordReset("user@example.com", "http://app/reset-password?token=x", "User")
	assert.False(t, ok)
	assert.Equal(t, "connection refused", msg)
}

func TestMailerAccountDecisionSubjects(t *testing.T) {
	dialer := &fakeDialer{}
	m := New(configured(), dialer, nil)

	ok, _ := m.SendAccountDecision("user@example.com", "User", true)
	require.True(t, ok)
	ok, _ = m.SendAccountDecision("user@example.com", "User", false)
	require.True(t, ok)

	require.Len(t, dialer.sent, 2)
	assert.Contains(t, dialer.sent[0].GetHeader("Subject")[0], "approved")
	assert.Contains(t, dialer.sent[1].GetHeader("Subject")[0], "declined")
}
