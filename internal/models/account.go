package models

import "time"

// AccountRole discriminates the account partitions that used to live in
// separate per-role collections.
type AccountRole string

const (
	RoleInstructor AccountRole = "instructor"
	RoleAdmin      AccountRole = "admin"
	RoleAmuStaff   AccountRole = "amu-staff"
)

// ValidRole reports whether the role is one of the three known partitions.
func ValidRole(role string) bool {
	switch AccountRole(role) {
	case RoleInstructor, RoleAdmin, RoleAmuStaff:
		return true
	}
	return false
}

// Account statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
)

// Account represents a registered user. Uniqueness is enforced on (role, email).
type Account struct {
	ID                string      `db:"id" json:"id"`
	Name              string      `db:"name" json:"name"`
	Email             string      `db:"email" json:"email"`
	Role              AccountRole `db:"role" json:"role"`
	Department        string      `db:"department" json:"department"`
	ContactNumber     string      `db:"contact_number" json:"contact_number"`
	Status            string      `db:"status" json:"status"`
	PasswordHash      string      `db:"password_hash" json:"-"`
	EmailVerified     bool        `db:"email_verified" json:"email_verified"`
	VerificationToken *string     `db:"email_verification_token" json:"-"`
	VerificationUntil *time.Time  `db:"email_verification_expires" json:"-"`
	ResetToken        *string     `db:"password_reset_token" json:"-"`
	ResetUntil        *time.Time  `db:"password_reset_expires" json:"-"`
	CreatedAt         time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at" json:"updated_at"`
}

// AccountFilter captures filtering criteria for listing accounts.
type AccountFilter struct {
	Role   *AccountRole
	Status string
	Search string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
