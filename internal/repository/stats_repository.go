package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/aews-api/internal/models"
)

// StatsRepository runs the aggregate queries behind the admin dashboard.
// Department scoping always flows through the owning instructor's account.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository constructs a StatsRepository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// CountStudents returns the number of enrollments, optionally scoped to one
// department. The dashboard KPIs count enrollments, not distinct emails, so
// totals line up with the per-department breakdown.
func (r *StatsRepository) CountStudents(ctx context.Context, department string) (int, error) {
	query := `SELECT COUNT(*)
        FROM enrollments e
        JOIN classes c ON c.id = e.class_id
        JOIN accounts a ON a.id = c.instructor_id`
	var args []interface{}
	if department != "" {
		query += ` WHERE a.department = $1`
		args = append(args, department)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

// CountAtRisk returns the number of enrollments labelled High or Medium.
func (r *StatsRepository) CountAtRisk(ctx context.Context, department string) (int, error) {
	query := `SELECT COUNT(*)
        FROM enrollments e
        JOIN classes c ON c.id = e.class_id
        JOIN accounts a ON a.id = c.instructor_id
        WHERE e.risk IN ('High', 'Medium')`
	var args []interface{}
	if department != "" {
		query += ` AND a.department = $1`
		args = append(args, department)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count at-risk students: %w", err)
	}
	return count, nil
}

// CountInstructors returns the number of instructor accounts, optionally
// scoped to one department.
func (r *StatsRepository) CountInstructors(ctx context.Context, department string) (int, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE role = 'instructor'`
	var args []interface{}
	if department != "" {
		query += ` AND department = $1`
		args = append(args, department)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count instructors: %w", err)
	}
	return count, nil
}

// CountInterventions returns the total number of interventions.
func (r *StatsRepository) CountInterventions(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM interventions`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count interventions: %w", err)
	}
	return count, nil
}

// DepartmentBreakdown groups enrollment totals by instructor department.
func (r *StatsRepository) DepartmentBreakdown(ctx context.Context) ([]models.DepartmentStats, error) {
	const query = `SELECT a.department,
            COUNT(e.id) AS total,
            COUNT(e.id) FILTER (WHERE e.risk IN ('High', 'Medium')) AS at_risk,
            COUNT(DISTINCT a.id) AS instructors
        FROM accounts a
        LEFT JOIN classes c ON c.instructor_id = a.id
        LEFT JOIN enrollments e ON e.class_id = c.id
        WHERE a.role = 'instructor' AND a.department <> ''
        GROUP BY a.department
        ORDER BY a.department`
	var stats []models.DepartmentStats
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("department breakdown: %w", err)
	}
	return stats, nil
}

// InstructorBreakdown summarises every instructor's classes and enrollments.
func (r *StatsRepository) InstructorBreakdown(ctx context.Context) ([]models.InstructorStats, error) {
	const query = `SELECT a.id, a.name, a.email, a.department,
            COUNT(DISTINCT c.id) AS classes,
            COUNT(e.id) AS students,
            COUNT(e.id) FILTER (WHERE e.risk IN ('High', 'Medium')) AS at_risk
        FROM accounts a
        LEFT JOIN classes c ON c.instructor_id = a.id
        LEFT JOIN enrollments e ON e.class_id = c.id
        WHERE a.role = 'instructor'
        GROUP BY a.id, a.name, a.email, a.department
        ORDER BY a.name`
	var stats []models.InstructorStats
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("instructor breakdown: %w", err)
	}
	return stats, nil
}

// AtRiskRows lists every High or Medium enrollment joined with its class and
// instructor, optionally scoped to one department.
func (r *StatsRepository) AtRiskRows(ctx context.Context, department string) ([]models.AtRiskRow, error) {
	query := `SELECT e.student_email, a.department, c.subject_code, c.subject_name,
            c.subject_code || ' ' || c.subject_name AS course,
            e.risk, a.name AS instructor_name, c.id AS class_id
        FROM enrollments e
        JOIN classes c ON c.id = e.class_id
        JOIN accounts a ON a.id = c.instructor_id
        WHERE e.risk IN ('High', 'Medium')`
	var args []interface{}
	if department != "" {
		query += ` AND a.department = $1`
		args = append(args, department)
	}
	query += ` ORDER BY e.risk, e.student_email`
	var rows []models.AtRiskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("at-risk rows: %w", err)
	}
	return rows, nil
}

// RiskDistribution counts enrollments per risk label.
func (r *StatsRepository) RiskDistribution(ctx context.Context) ([]models.RiskBucket, error) {
	const query = `SELECT risk, COUNT(*) AS count
        FROM enrollments
        WHERE risk IS NOT NULL
        GROUP BY risk`
	var buckets []models.RiskBucket
	if err := r.db.SelectContext(ctx, &buckets, query); err != nil {
		return nil, fmt.Errorf("risk distribution: %w", err)
	}
	return buckets, nil
}

// Departments lists the distinct instructor departments.
func (r *StatsRepository) Departments(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT department FROM accounts
        WHERE role = 'instructor' AND department <> ''
        ORDER BY department`
	var departments []string
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

// StudentEnrollments lists every enrollment for one student email across
// classes, with the owning instructor attached.
func (r *StatsRepository) StudentEnrollments(ctx context.Context, email string) ([]models.StudentEnrollmentRow, error) {
	const query = `SELECT c.id AS class_id, c.subject_code, c.subject_name,
            a.id AS instructor_id, a.name AS instructor_name, a.department,
            e.risk, e.gpa, e.attendance, e.lms_activity
        FROM enrollments e
        JOIN classes c ON c.id = e.class_id
        JOIN accounts a ON a.id = c.instructor_id
        WHERE LOWER(e.student_email) = LOWER($1)
        ORDER BY c.subject_code`
	var rows []models.StudentEnrollmentRow
	if err := r.db.SelectContext(ctx, &rows, query, email); err != nil {
		return nil, fmt.Errorf("student enrollments: %w", err)
	}
	return rows, nil
}
