package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries the identity issued on login.
type JWTClaims struct {
	AccountID string      `json:"account_id"`
	Role      AccountRole `json:"role"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	jwt.RegisteredClaims
}

// AccountInfo is the public projection of an account returned by auth and
// moderation endpoints.
type AccountInfo struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Role          AccountRole `json:"role"`
	Department    string      `json:"department"`
	ContactNumber string      `json:"contact_number"`
	Status        string      `json:"status"`
	EmailVerified bool        `json:"email_verified"`
}

// SignupRequest is the self-registration payload.
type SignupRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	Role          string `json:"role" validate:"required"`
	Department    string `json:"department"`
	ContactNumber string `json:"contact_number"`
}

// SignupResponse echoes the registered account. VerificationLink is only set
// when the mail could not be dispatched so development setups can still verify.
type SignupResponse struct {
	Account          AccountInfo `json:"account"`
	EmailSent        bool        `json:"email_sent"`
	VerificationLink string      `json:"verification_link,omitempty"`
}

// LoginRequest is the credentials payload. Role selects the account partition.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	Account     AccountInfo `json:"account"`
}

// ForgotPasswordRequest starts the reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest consumes a reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// EmailStatus reports whether outbound mail is configured, without secrets.
type EmailStatus struct {
	SMTPConfigured bool   `json:"smtp_configured"`
	From           string `json:"from,omitempty"`
}

// Info projects an account into its public shape.
func (a *Account) Info() AccountInfo {
	return AccountInfo{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		Role:          a.Role,
		Department:    a.Department,
		ContactNumber: a.ContactNumber,
		Status:        a.Status,
		EmailVerified: a.EmailVerified,
	}
}
