package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/aews-api/internal/models"
	appErrors "github.com/noah-isme/aews-api/pkg/errors"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour
)

type authAccountRepository interface {
	FindByRoleEmail(ctx context.Context, role models.AccountRole, email string) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByVerificationToken(ctx context.Context, token string) (*models.Account, error)
	FindByResetToken(ctx context.Context, token string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	ReplaceSignup(ctx context.Context, account *models.Account) error
	MarkVerified(ctx context.Context, id string) error
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	UpdatePasswordAndClearReset(ctx context.Context, id, passwordHash string) error
}

// AuthMailer is the slice of the mailer the auth flows need.
type AuthMailer interface {
	Configured() bool
	SendVerification(to, link, name string) (bool, string)
	SendPasswordReset(to, link, name string) (bool, string)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
	FrontendBaseURL   string
}

// AuthService provides signup, login and token lifecycle use cases.
type AuthService struct {
	repo      authAccountRepository
	mailer    AuthMailer
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authAccountRepository, mailer AuthMailer, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{repo: repo, mailer: mailer, validator: validate, logger: logger, config: config}
}

// Signup registers a new account in its role partition and dispatches a
// verification email. Re-signing up over an unverified row overwrites it.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid signup payload")
	}
	if !models.ValidRole(req.Role) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	role := models.AccountRole(req.Role)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.FindByRoleEmail(ctx, role, email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, dbError(err)
	}
	if existing != nil && existing.EmailVerified {
		return nil, appErrors.Clone(appErrors.ErrConflict, "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	token, err := generateToken()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create verification token")
	}
	expires := time.Now().UTC().Add(verificationTokenTTL)

	account := &models.Account{
		Name:              req.Name,
		Email:             email,
		Role:              role,
		Department:        req.Department,
		ContactNumber:     req.ContactNumber,
		Status:            models.StatusActive,
		PasswordHash:      string(hash),
		EmailVerified:     false,
		VerificationToken: &token,
		VerificationUntil: &expires,
	}

	if existing != nil {
		account.ID = existing.ID
		account.CreatedAt = existing.CreatedAt
		if err := s.repo.ReplaceSignup(ctx, account); err != nil {
			return nil, dbError(err)
		}
	} else {
		if err := s.repo.Create(ctx, account); err != nil {
			return nil, dbError(err)
		}
	}

	link := s.verificationLink(token)
	sent, sendErr := s.mailer.SendVerification(account.Email, link, account.Name)
	if !sent {
		s.logger.Warn("verification email not sent",
			zap.String("email", account.Email),
			zap.String("reason", sendErr))
	}

	resp := &models.SignupResponse{Account: account.Info(), EmailSent: sent}
	if !sent {
		resp.VerificationLink = link
	}
	return resp, nil
}

// Login authenticates against one role partition and issues an access token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}
	if !models.ValidRole(req.Role) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}

	account, err := s.repo.FindByRoleEmail(ctx, models.AccountRole(req.Role), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
		return nil, dbError(err)
	}

	if !account.EmailVerified {
		return nil, appErrors.Clone(appErrors.ErrUnverifiedAccount, "please verify your email before logging in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	accessToken, err := s.generateAccessToken(account)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	return &models.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		Account:     account.Info(),
	}, nil
}

// VerifyEmail consumes a verification token. A second click on the same link
// resolves to the already-verified account and succeeds again.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*models.AccountInfo, error) {
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrTokenInvalid, "")
	}
	account, err := s.repo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrTokenInvalid, "")
		}
		return nil, dbError(err)
	}

	if account.EmailVerified {
		info := account.Info()
		return &info, nil
	}

	if account.VerificationUntil == nil || time.Now().UTC().After(account.VerificationUntil.UTC()) {
		return nil, appErrors.Clone(appErrors.ErrTokenExpired, "")
	}

	if err := s.repo.MarkVerified(ctx, account.ID); err != nil {
		return nil, dbError(err)
	}
	account.EmailVerified = true
	info := account.Info()
	return &info, nil
}

// ForgotPassword starts the reset flow. The response never reveals whether the
// email exists; only verified accounts receive a token.
func (s *AuthService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	account, err := s.repo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return dbError(err)
	}
	if !account.EmailVerified {
		return nil
	}

	token, err := generateToken()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create reset token")
	}
	expires := time.Now().UTC().Add(resetTokenTTL)
	if err := s.repo.SetResetToken(ctx, account.ID, token, expires); err != nil {
		return dbError(err)
	}

	link := s.resetLink(token)
	if sent, sendErr := s.mailer.SendPasswordReset(account.Email, link, account.Name); !sent {
		s.logger.Warn("password reset email not sent",
			zap.String("email", account.Email),
			zap.String("reason", sendErr))
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash. The
// token is single-use: the hash update and token clearing happen together.
func (s *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	account, err := s.repo.FindByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrTokenInvalid, "")
		}
		return dbError(err)
	}

	if account.ResetUntil == nil || time.Now().UTC().After(account.ResetUntil.UTC()) {
		return appErrors.Clone(appErrors.ErrTokenExpired, "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	if err := s.repo.UpdatePasswordAndClearReset(ctx, account.ID, string(hash)); err != nil {
		return dbError(err)
	}
	return nil
}

// EmailStatus reports whether the SMTP relay is configured.
func (s *AuthService) EmailStatus(from string) models.EmailStatus {
	status := models.EmailStatus{SMTPConfigured: s.mailer.Configured()}
	if status.SMTPConfigured {
		status.From = from
	}
	return status
}

// SendTestEmail dispatches a verification-style mail to the given address.
func (s *AuthService) SendTestEmail(to string) (bool, string) {
	if !s.mailer.Configured() {
		return false, "smtp is not configured"
	}
	return s.mailer.SendVerification(to, s.verificationLink("test-token"), "there")
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) generateAccessToken(account *models.Account) (string, error) {
	now := time.Now().UTC()
	claims := models.JWTClaims{
		AccountID: account.ID,
		Role:      account.Role,
		Email:     account.Email,
		Name:      account.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}

func (s *AuthService) verificationLink(token string) string {
	return fmt.Sprintf("%s/verify-email?token=%s", strings.TrimRight(s.config.FrontendBaseURL, "/"), token)
}

func (s *AuthService) resetLink(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.config.FrontendBaseURL, "/"), token)
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
