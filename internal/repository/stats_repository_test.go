package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountStudentsCountsEnrollmentRows(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStatsRepository(db)

	// The KPI counts enrollment rows, not distinct emails, so the total is
	// the same unit the department breakdown aggregates.
	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM enrollments e\s+JOIN classes c ON c\.id = e\.class_id\s+JOIN accounts a ON a\.id = c\.instructor_id$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountStudents(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountStudentsScopedToDepartment(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStatsRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM enrollments e(.+)WHERE a\.department = \$1`).
		WithArgs("Computer Science").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountStudents(context.Background(), "Computer Science")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountAtRiskFiltersHighAndMedium(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStatsRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM enrollments e(.+)WHERE e\.risk IN \('High', 'Medium'\)$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountAtRisk(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverviewTotalMatchesBreakdownSum(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStatsRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM enrollments e`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`SELECT a\.department,\s+COUNT\(e\.id\) AS total`).
		WillReturnRows(sqlmock.NewRows([]string{"department", "total", "at_risk", "instructors"}).
			AddRow("Computer Science", 3, 1, 2).
			AddRow("Mathematics", 2, 0, 1))

	total, err := repo.CountStudents(context.Background(), "")
	require.NoError(t, err)

	stats, err := repo.DepartmentBreakdown(context.Background())
	require.NoError(t, err)

	sum := 0
	for _, stat := range stats {
		sum += stat.Total
	}
	assert.Equal(t, total, sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRiskDistributionScan(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStatsRepository(db)

	mock.ExpectQuery(`SELECT risk, COUNT\(\*\) AS count\s+FROM enrollments`).
		WillReturnRows(sqlmock.NewRows([]string{"risk", "count"}).
			AddRow("High", 2).
			AddRow("Low", 7))

	buckets, err := repo.RiskDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "High", buckets[0].Risk)
	assert.Equal(t, 2, buckets[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
