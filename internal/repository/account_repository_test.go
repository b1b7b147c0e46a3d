package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aews-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

var accountRows = []string{
	"id", "name", "email", "role", "department", "contact_number", "status", "password_hash", "email_verified",
	"email_verification_token", "email_verification_expires", "password_reset_token", "password_reset_expires",
	"created_at", "updated_at",
}

func accountRow(id, email string, role models.AccountRole) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(accountRows).
		AddRow(id, "Dana", email, string(role), "Computer Science", "", models.StatusActive, "hash", true,
			nil, nil, nil, nil, now, now)
}

func TestAccountFindByRoleEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE role = \$1 AND email = \$2 LIMIT 1`).
		WithArgs(models.RoleInstructor, "dana@campus.edu").
		WillReturnRows(accountRow("a1", "dana@campus.edu", models.RoleInstructor))

	account, err := repo.FindByRoleEmail(context.Background(), models.RoleInstructor, "dana@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, "dana@campus.edu", account.Email)
	assert.Equal(t, models.RoleInstructor, account.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountFindByEmailNoRows(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs("nobody@campus.edu").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@campus.edu")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAccountRepository(db)

	mock.ExpectExec("INSERT INTO accounts").WillReturnResult(sqlmock.NewResult(1, 1))

	account := &models.Account{
		Name:  "Dana",
		Email: "dana@campus.edu",
		Role:  models.RoleInstructor,
	}
	err := repo.Create(context.Background(), account)
	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAccountRepository(db)

	role := models.RoleInstructor
	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE 1=1 AND role = \$1 ORDER BY role, name`).
		WithArgs(role).
		WillReturnRows(accountRow("a1", "dana@campus.edu", role))

	accounts, err := repo.List(context.Background(), models.AccountFilter{Role: &role})
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountUpdateFieldsOrdersColumns(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAccountRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET department = $1, name = $2, updated_at = $3 WHERE id = $4")).
		WithArgs("Mathematics", "Dana", sqlmock.AnyArg(), "a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateFields(context.Background(), "a1", map[string]interface{}{
		"name":       "Dana",
		"department": "Mathematics",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountUpdateFieldsEmptyNoop(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAccountRepository(db)

	err := repo.UpdateFields(context.Background(), "a1", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountUpdatePasswordAndClearReset(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAccountRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET password_hash = $2, password_reset_token = NULL, password_reset_expires = NULL, updated_at = $3 WHERE id = $1")).
		WithArgs("a1", "newhash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePasswordAndClearReset(context.Background(), "a1", "newhash")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAccountRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM accounts WHERE id = $1")).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), "a1")
	require.NoError(t, err)
	assert.False(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
