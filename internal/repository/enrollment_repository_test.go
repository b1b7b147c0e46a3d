package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aews-api/internal/models"
)

func TestEnrollmentExists(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM enrollments WHERE class_id = $1 AND student_email = $2 LIMIT 1")).
		WithArgs("c1", "student@campus.edu").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "c1", "student@campus.edu")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentExistsNoRows(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM enrollments WHERE class_id = $1 AND student_email = $2 LIMIT 1")).
		WithArgs("c1", "student@campus.edu").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.Exists(context.Background(), "c1", "student@campus.edu")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec("INSERT INTO enrollments").WillReturnResult(sqlmock.NewResult(1, 1))

	enrollment := &models.Enrollment{ClassID: "c1", StudentEmail: "student@campus.edu"}
	err := repo.Create(context.Background(), enrollment)
	require.NoError(t, err)
	assert.NotEmpty(t, enrollment.ID)
	assert.False(t, enrollment.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentUpdateFieldsOrdersColumns(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET gpa = $1, risk = $2, updated_at = $3 WHERE class_id = $4 AND student_email = $5")).
		WithArgs(3.1, "High", sqlmock.AnyArg(), "c1", "student@campus.edu").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateFields(context.Background(), "c1", "student@campus.edu", map[string]interface{}{
		"risk": "High",
		"gpa":  3.1,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRiskList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{"student_email", "risk"}).
		AddRow("a@campus.edu", "High").
		AddRow("b@campus.edu", "Low")
	mock.ExpectQuery(`SELECT student_email, risk FROM enrollments`).
		WithArgs("c1").
		WillReturnRows(rows)

	entries, err := repo.RiskList(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a@campus.edu", entries[0].StudentEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentListRosterByInstructor(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	risk := "Medium"
	gpa := 2.4
	rows := sqlmock.NewRows([]string{"student_email", "class_id", "subject_code", "subject_name", "risk", "gpa", "attendance", "lms_activity", "flagged_for_mentoring"}).
		AddRow("a@campus.edu", "c1", "CS101", "Intro to Computing", risk, gpa, 80.0, 55.0, false)
	mock.ExpectQuery(`FROM enrollments e JOIN classes c ON c.id = e.class_id\s+WHERE c.instructor_id = \$1 ORDER BY`).
		WithArgs("i1").
		WillReturnRows(rows)

	roster, err := repo.ListRosterByInstructor(context.Background(), "i1")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "CS101", roster[0].SubjectCode)
	require.NotNil(t, roster[0].Risk)
	assert.Equal(t, "Medium", *roster[0].Risk)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassListByInstructor(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := sqlmock.NewRows([]string{"id", "subject_code", "subject_name", "instructor_id", "created_at", "student_count", "at_risk_count"}).
		AddRow("c1", "CS101", "Intro to Computing", "i1", time.Now(), 12, 3)
	mock.ExpectQuery(`FROM classes c WHERE c.instructor_id = \$1 ORDER BY c.subject_code`).
		WithArgs("i1").
		WillReturnRows(rows)

	classes, err := repo.ListByInstructor(context.Background(), "i1")
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, 12, classes[0].StudentCount)
	assert.Equal(t, 3, classes[0].AtRiskCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
