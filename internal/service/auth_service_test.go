package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/aews-api/internal/models"
	appErrors "github.com/noah-isme/aews-api/pkg/errors"
)

type mockAuthRepo struct {
	byRoleEmail    *models.Account
	byEmail        *models.Account
	byVerifyToken  *models.Account
	byResetToken   *models.Account
	findErr        error
	created        *models.Account
	replaced       *models.Account
	verifiedID     string
	resetTokenSet  string
	resetExpires   time.Time
	passwordUpdate struct {
		id   string
		hash string
	}
}

func (m *mockAuthRepo) FindByRoleEmail(ctx context.Context, role models.AccountRole, email string) (*models.Account, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.byRoleEmail == nil {
		return nil, sql.ErrNoRows
	}
	return m.byRoleEmail, nil
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	if m.byEmail == nil {
		return nil, sql.ErrNoRows
	}
	return m.byEmail, nil
}

func (m *mockAuthRepo) FindByVerificationToken(ctx context.Context, token string) (*models.Account, error) {
	if m.byVerifyToken == nil {
		return nil, sql.ErrNoRows
	}
	return m.byVerifyToken, nil
}

func (m *mockAuthRepo) FindByResetToken(ctx context.Context, token string) (*models.Account, error) {
	if m.byResetToken == nil {
		return nil, sql.ErrNoRows
	}
	return m.byResetToken, nil
}

func (m *mockAuthRepo) Create(ctx context.Context, account *models.Account) error {
	account.ID = "created-id"
	m.created = account
	return nil
}

func (m *mockAuthRepo) ReplaceSignup(ctx context.Context, account *models.Account) error {
	m.replaced = account
	return nil
}

func (m *mockAuthRepo) MarkVerified(ctx context.Context, id string) error {
	m.verifiedID = id
	return nil
}

func (m *mockAuthRepo) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	m.resetTokenSet = token
	m.resetExpires = expires
	return nil
}

func (m *mockAuthRepo) UpdatePasswordAndClearReset(ctx context.Context, id, passwordHash string) error {
	m.passwordUpdate.id = id
	m.passwordUpdate.hash = passwordHash
	return nil
}

type mockMailer struct {
	configured bool
	sendOK     bool
	sentTo     []string
	lastLink   string
}

func (m *mockMailer) Configured() bool { return m.configured }

func (m *mockMailer) SendVerification(to, link, name string) (bool, string) {
	m.sentTo = append(m.sentTo, to)
	m.lastLink = link
	if m.sendOK {
		return true, ""
	}
	return false, "dial failed"
}

func (m *mockMailer) SendPasswordReset(to, link, name string) (bool, string) {
	m.sentTo = append(m.sentTo, to)
	m.lastLink = link
	if m.sendOK {
		return true, ""
	}
	return false, "dial failed"
}

func newAuthService(repo *mockAuthRepo, mail *mockMailer) *AuthService {
	return NewAuthService(repo, mail, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret: "secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "aews",
		FrontendBaseURL:   "http://localhost:5173",
	})
}

func verifiedAccount(password string) *models.Account {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return &models.Account{
		ID:            "a1",
		Name:          "Dana",
		Email:         "dana@campus.edu",
		Role:          models.RoleInstructor,
		Status:        models.StatusActive,
		PasswordHash:  string(hash),
		EmailVerified: true,
	}
}

func TestSignupSendsVerification(t *testing.T) {
	repo := &mockAuthRepo{}
	mail := &mockMailer{configured: true, sendOK: true}
	svc := newAuthService(repo, mail)

	resp, err := svc.Signup(context.Background(), models.SignupRequest{
		Name:     "Dana",
		Email:    "Dana@Campus.EDU",
		Password: "secret123",
		Role:     "instructor",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, "dana@campus.edu", repo.created.Email)
	assert.False(t, repo.created.EmailVerified)
	assert.NotNil(t, repo.created.VerificationToken)
	assert.True(t, resp.EmailSent)
	assert.Empty(t, resp.VerificationLink)
	assert.Contains(t, mail.lastLink, "/verify-email?token=")
}

func TestSignupDuplicateVerifiedEmail(t *testing.T) {
	repo := &mockAuthRepo{byRoleEmail: verifiedAccount("secret123")}
	svc := newAuthService(repo, &mockMailer{})

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Name:     "Dana",
		Email:    "dana@campus.edu",
		Password: "secret123",
		Role:     "instructor",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Email already registered", appErr.Message)
}

func TestSignupOverwritesUnverifiedRow(t *testing.T) {
	existing := verifiedAccount("old")
	existing.EmailVerified = false
	repo := &mockAuthRepo{byRoleEmail: existing}
	mail := &mockMailer{}
	svc := newAuthService(repo, mail)

	resp, err := svc.Signup(context.Background(), models.SignupRequest{
		Name:     "Dana Prime",
		Email:    "dana@campus.edu",
		Password: "secret123",
		Role:     "instructor",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.replaced)
	assert.Nil(t, repo.created)
	assert.Equal(t, existing.ID, repo.replaced.ID)
	assert.Equal(t, "Dana Prime", repo.replaced.Name)
	// Mail failed, so the link is echoed for development setups.
	assert.False(t, resp.EmailSent)
	assert.NotEmpty(t, resp.VerificationLink)
}

func TestLoginSuccess(t *testing.T) {
	repo := &mockAuthRepo{byRoleEmail: verifiedAccount("secret123")}
	svc := newAuthService(repo, &mockMailer{})

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "dana@campus.edu",
		Password: "secret123",
		Role:     "instructor",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "a1", resp.Account.ID)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a1", claims.AccountID)
	assert.Equal(t, models.RoleInstructor, claims.Role)
}

func TestLoginUnverifiedAccount(t *testing.T) {
	account := verifiedAccount("secret123")
	account.EmailVerified = false
	repo := &mockAuthRepo{byRoleEmail: account}
	svc := newAuthService(repo, &mockMailer{})

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "dana@campus.edu",
		Password: "secret123",
		Role:     "instructor",
	})
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}

func TestLoginBadPassword(t *testing.T) {
	repo := &mockAuthRepo{byRoleEmail: verifiedAccount("secret123")}
	svc := newAuthService(repo, &mockMailer{})

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "dana@campus.edu",
		Password: "wrong",
		Role:     "instructor",
	})
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{}, &mockMailer{})

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@campus.edu",
		Password: "secret123",
		Role:     "instructor",
	})
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}

func TestVerifyEmailIdempotent(t *testing.T) {
	account := verifiedAccount("secret123")
	token := "tok"
	until := time.Now().UTC().Add(time.Hour)
	account.VerificationToken = &token
	account.VerificationUntil = &until
	repo := &mockAuthRepo{byVerifyToken: account}
	svc := newAuthService(repo, &mockMailer{})

	info, err := svc.VerifyEmail(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, info.EmailVerified)
	// Already verified, so no repository write happened.
	assert.Empty(t, repo.verifiedID)
}

func TestVerifyEmailExpired(t *testing.T) {
	account := verifiedAccount("secret123")
	account.EmailVerified = false
	until := time.Now().UTC().Add(-time.Minute)
	account.VerificationUntil = &until
	repo := &mockAuthRepo{byVerifyToken: account}
	svc := newAuthService(repo, &mockMailer{})

	_, err := svc.VerifyEmail(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTokenExpired.Code, appErrors.FromError(err).Code)
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{}, &mockMailer{})

	_, err := svc.VerifyEmail(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTokenInvalid.Code, appErrors.FromError(err).Code)
}

func TestVerifyEmailMarksVerified(t *testing.T) {
	account := verifiedAccount("secret123")
	account.EmailVerified = false
	until := time.Now().UTC().Add(time.Hour)
	account.VerificationUntil = &until
	repo := &mockAuthRepo{byVerifyToken: account}
	svc := newAuthService(repo, &mockMailer{})

	info, err := svc.VerifyEmail(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, info.EmailVerified)
	assert.Equal(t, account.ID, repo.verifiedID)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	repo := &mockAuthRepo{}
	mail := &mockMailer{configured: true, sendOK: true}
	svc := newAuthService(repo, mail)

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "nobody@campus.edu"})
	require.NoError(t, err)
	assert.Empty(t, mail.sentTo)
	assert.Empty(t, repo.resetTokenSet)
}

func TestForgotPasswordUnverifiedIsSilent(t *testing.T) {
	account := verifiedAccount("secret123")
	account.EmailVerified = false
	repo := &mockAuthRepo{byEmail: account}
	mail := &mockMailer{configured: true, sendOK: true}
	svc := newAuthService(repo, mail)

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "dana@campus.edu"})
	require.NoError(t, err)
	assert.Empty(t, mail.sentTo)
}

func TestForgotPasswordIssuesToken(t *testing.T) {
	repo := &mockAuthRepo{byEmail: verifiedAccount("secret123")}
	mail := &mockMailer{configured: true, sendOK: true}
	svc := newAuthService(repo, mail)

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "dana@campus.edu"})
	require.NoError(t, err)
	assert.NotEmpty(t, repo.resetTokenSet)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), repo.resetExpires, time.Minute)
	require.Len(t, mail.sentTo, 1)
	assert.Contains(t, mail.lastLink, "/reset-password?token=")
}

func TestResetPasswordConsumesToken(t *testing.T) {
	account := verifiedAccount("secret123")
	until := time.Now().UTC().Add(30 * time.Minute)
	account.ResetUntil = &until
	repo := &mockAuthRepo{byResetToken: account}
	svc := newAuthService(repo, &mockMailer{})

	err := svc.ResetPassword(context.Background(), models.ResetPasswordRequest{Token: "tok", Password: "newsecret"})
	require.NoError(t, err)
	assert.Equal(t, "a1", repo.passwordUpdate.id)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.passwordUpdate.hash), []byte("newsecret")))
}

func TestResetPasswordExpiredToken(t *testing.T) {
	account := verifiedAccount("secret123")
	until := time.Now().UTC().Add(-time.Minute)
	account.ResetUntil = &until
	repo := &mockAuthRepo{byResetToken: account}
	svc := newAuthService(repo, &mockMailer{})

	err := svc.ResetPassword(context.Background(), models.ResetPasswordRequest{Token: "tok", Password: "newsecret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTokenExpired.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.passwordUpdate.id)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{}, &mockMailer{})

	err := svc.ResetPassword(context.Background(), models.ResetPasswordRequest{Token: "missing", Password: "newsecret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTokenInvalid.Code, appErrors.FromError(err).Code)
}

func TestEmailStatus(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{}, &mockMailer{configured: true})
	status := svc.EmailStatus("noreply@campus.edu")
	assert.True(t, status.SMTPConfigured)
	assert.Equal(t, "noreply@campus.edu", status.From)

	svc = newAuthService(&mockAuthRepo{}, &mockMailer{})
	status = svc.EmailStatus("noreply@campus.edu")
	assert.False(t, status.SMTPConfigured)
	assert.Empty(t, status.From)
}
