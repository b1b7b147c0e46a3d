package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationMarkReadByIDOnly(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectExec(`UPDATE notifications SET read = TRUE WHERE id = \$1$`).
		WithArgs("n1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.MarkRead(context.Background(), "", "n1")
	require.NoError(t, err)
	assert.True(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationMarkReadWithRoleScope(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectExec(`UPDATE notifications SET read = TRUE WHERE id = \$1 AND role = \$2`).
		WithArgs("n1", "admin").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.MarkRead(context.Background(), "admin", "n1")
	require.NoError(t, err)
	assert.False(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
