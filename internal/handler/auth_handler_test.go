package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/aews-api/internal/models"
	"github.com/noah-isme/aews-api/internal/service"
)

type authRepoFake struct {
	accounts map[string]*models.Account // keyed by role:email
}

func (f *authRepoFake) FindByRoleEmail(ctx context.Context, role models.AccountRole, email string) (*models.Account, error) {
	if a, ok := f.accounts[string(role)+":"+email]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (f *authRepoFake) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *authRepoFake) FindByVerificationToken(ctx context.Context, token string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.VerificationToken != nil && *a.VerificationToken == token {
			return a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *authRepoFake) FindByResetToken(ctx context.Context, token string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.ResetToken != nil && *a.ResetToken == token {
			return a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *authRepoFake) Create(ctx context.Context, account *models.Account) error {
	if f.accounts == nil {
		f.accounts = map[string]*models.Account{}
	}
	account.ID = "created"
	f.accounts[string(account.Role)+":"+account.Email] = account
	return nil
}

func (f *authRepoFake) ReplaceSignup(ctx context.Context, account *models.Account) error {
	f.accounts[string(account.Role)+":"+account.Email] = account
	return nil
}

func (f *authRepoFake) MarkVerified(ctx context.Context, id string) error {
	for _, a := range f.accounts {
		if a.ID == id {
			a.EmailVerified = true
		}
	}
	return nil
}

func (f *authRepoFake) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	return nil
}

func (f *authRepoFake) UpdatePasswordAndClearReset(ctx context.Context, id, passwordHash string) error {
	return nil
}

type mailerFake struct{}

func (mailerFake) Configured() bool { return false }

func (mailerFake) SendVerification(to, link, name string) (bool, string) {
	return false, "not configured"
}

func (mailerFake) SendPasswordReset(to, link, name string) (bool, string) {
	return false, "not configured"
}

func newAuthHandler(repo *authRepoFake) *AuthHandler {
	svc := service.NewAuthService(repo, mailerFake{}, nil, zap.NewNop(), service.AuthConfig{
		AccessTokenSecret: "secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "aews",
		FrontendBaseURL:   "http://localhost:5173",
	})
	return NewAuthHandler(svc, "noreply@campus.edu")
}

func TestSignupReturnsDevLink(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandler(&authRepoFake{})

	payload, _ := json.Marshal(models.SignupRequest{
		Name:     "Dana",
		Email:    "dana@campus.edu",
		Password: "secret123",
		Role:     "instructor",
	})
	c, w := newGinContext(http.MethodPost, "/auth/signup", payload)

	handler.Signup(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Data models.SignupResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.EmailSent)
	assert.Contains(t, envelope.Data.VerificationLink, "/verify-email?token=")
}

func TestLoginInvalidCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	repo := &authRepoFake{accounts: map[string]*models.Account{
		"instructor:dana@campus.edu": {
			ID: "a1", Email: "dana@campus.edu", Role: models.RoleInstructor,
			PasswordHash: string(hash), EmailVerified: true,
		},
	}}
	handler := newAuthHandler(repo)

	payload, _ := json.Marshal(models.LoginRequest{Email: "dana@campus.edu", Password: "wrong", Role: "instructor"})
	c, w := newGinContext(http.MethodPost, "/auth/login", payload)

	handler.Login(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnverifiedIsForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	repo := &authRepoFake{accounts: map[string]*models.Account{
		"instructor:dana@campus.edu": {
			ID: "a1", Email: "dana@campus.edu", Role: models.RoleInstructor,
			PasswordHash: string(hash), EmailVerified: false,
		},
	}}
	handler := newAuthHandler(repo)

	payload, _ := json.Marshal(models.LoginRequest{Email: "dana@campus.edu", Password: "secret123", Role: "instructor"})
	c, w := newGinContext(http.MethodPost, "/auth/login", payload)

	handler.Login(c)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyEmailMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandler(&authRepoFake{})

	c, w := newGinContext(http.MethodGet, "/auth/verify-email", nil)

	handler.VerifyEmail(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForgotPasswordAlwaysGeneric(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandler(&authRepoFake{})

	payload, _ := json.Marshal(models.ForgotPasswordRequest{Email: "ghost@campus.edu"})
	c, w := newGinContext(http.MethodPost, "/auth/forgot-password", payload)

	handler.ForgotPassword(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "If the email is registered")
}

func TestEmailStatusEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandler(&authRepoFake{})

	c, w := newGinContext(http.MethodGet, "/auth/email-status", nil)

	handler.EmailStatus(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"smtp_configured":false`)
}
