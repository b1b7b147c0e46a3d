package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/aews-api/internal/models"
)

const accountColumns = `id, name, email, role, department, contact_number, status, password_hash, email_verified,
        email_verification_token, email_verification_expires, password_reset_token, password_reset_expires,
        created_at, updated_at`

// AccountRepository provides database access for account management.
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByID returns an account by identifier.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE id = $1 LIMIT 1`, accountColumns)
	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return &account, nil
}

// FindByRoleEmail returns the account registered under the given role partition.
func (r *AccountRepository) FindByRoleEmail(ctx context.Context, role models.AccountRole, email string) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE role = $1 AND email = $2 LIMIT 1`, accountColumns)
	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, role, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find account by role and email: %w", err)
	}
	return &account, nil
}

// FindByEmail returns the first account matching the email across all role
// partitions, case-insensitively.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE LOWER(email) = LOWER($1) ORDER BY role LIMIT 1`, accountColumns)
	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return &account, nil
}

// FindByVerificationToken looks an account up by its email verification token.
func (r *AccountRepository) FindByVerificationToken(ctx context.Context, token string) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE email_verification_token = $1 LIMIT 1`, accountColumns)
	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, token); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find account by verification token: %w", err)
	}
	return &account, nil
}

// FindByResetToken looks an account up by its password reset token.
func (r *AccountRepository) FindByResetToken(ctx context.Context, token string) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE password_reset_token = $1 LIMIT 1`, accountColumns)
	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, token); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find account by reset token: %w", err)
	}
	return &account, nil
}

// List returns accounts matching the provided filters.
func (r *AccountRepository) List(ctx context.Context, filter models.AccountFilter) ([]models.Account, error) {
	base := fmt.Sprintf("SELECT %s FROM accounts WHERE 1=1", accountColumns)
	var conditions []string
	var args []interface{}

	if filter.Role != nil {
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)+1))
		args = append(args, *filter.Role)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}
	base += " ORDER BY role, name"

	var accounts []models.Account
	if err := r.db.SelectContext(ctx, &accounts, base, args...); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// ListPending returns self-registering accounts awaiting moderation. Admin
// accounts never enter the pending state.
func (r *AccountRepository) ListPending(ctx context.Context) ([]models.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE status = $1 AND role IN ($2, $3) ORDER BY created_at`, accountColumns)
	var accounts []models.Account
	if err := r.db.SelectContext(ctx, &accounts, query, models.StatusPending, models.RoleInstructor, models.RoleAmuStaff); err != nil {
		return nil, fmt.Errorf("list pending accounts: %w", err)
	}
	return accounts, nil
}

// Create inserts a new account record.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	const query = `INSERT INTO accounts (id, name, email, role, department, contact_number, status, password_hash, email_verified,
        email_verification_token, email_verification_expires, password_reset_token, password_reset_expires, created_at, updated_at)
        VALUES (:id, :name, :email, :role, :department, :contact_number, :status, :password_hash, :email_verified,
        :email_verification_token, :email_verification_expires, :password_reset_token, :password_reset_expires, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, account); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// ReplaceSignup overwrites an unverified account with a fresh signup payload,
// keeping the original row id.
func (r *AccountRepository) ReplaceSignup(ctx context.Context, account *models.Account) error {
	account.UpdatedAt = time.Now().UTC()
	const query = `UPDATE accounts SET name = :name, department = :department, contact_number = :contact_number,
        status = :status, password_hash = :password_hash, email_verified = :email_verified,
        email_verification_token = :email_verification_token, email_verification_expires = :email_verification_expires,
        updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, account); err != nil {
		return fmt.Errorf("replace signup: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update. Only the provided columns change.
func (r *AccountRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	assignments := make([]string, 0, len(keys)+1)
	args := make([]interface{}, 0, len(keys)+2)
	for _, k := range keys {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", k, len(args)+1))
		args = append(args, fields[k])
	}
	assignments = append(assignments, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE accounts SET %s WHERE id = $%d", strings.Join(assignments, ", "), len(args))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// MarkVerified flips the verification flag. The verification token stays in
// place so a second click on the same link can still resolve the account.
func (r *AccountRepository) MarkVerified(ctx context.Context, id string) error {
	const query = `UPDATE accounts SET email_verified = true, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark account verified: %w", err)
	}
	return nil
}

// SetResetToken stores a fresh password reset token with its expiry.
func (r *AccountRepository) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	const query = `UPDATE accounts SET password_reset_token = $2, password_reset_expires = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, token, expires, time.Now().UTC()); err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

// UpdatePasswordAndClearReset sets the new hash and consumes the reset token in
// a single statement.
func (r *AccountRepository) UpdatePasswordAndClearReset(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE accounts SET password_hash = $2, password_reset_token = NULL, password_reset_expires = NULL, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash, time.Now().UTC()); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// SetDecision records an admin moderation outcome for a pending account.
func (r *AccountRepository) SetDecision(ctx context.Context, id, status string, markVerified bool) error {
	if markVerified {
		const query = `UPDATE accounts SET status = $2, email_verified = true, updated_at = $3 WHERE id = $1`
		if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
			return fmt.Errorf("set account decision: %w", err)
		}
		return nil
	}
	const query = `UPDATE accounts SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("set account decision: %w", err)
	}
	return nil
}

// Delete removes an account and reports whether a row was affected.
func (r *AccountRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM accounts WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	return affected > 0, nil
}
