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

// EnrollmentRepository manages persistence for class enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListByClass returns a class roster ordered by student email.
func (r *EnrollmentRepository) ListByClass(ctx context.Context, classID string) ([]models.Enrollment, error) {
	const query = `SELECT id, class_id, student_email, gpa, attendance, lms_activity, risk, flagged_for_mentoring, created_at, updated_at
        FROM enrollments WHERE class_id = $1 ORDER BY student_email`
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, classID); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// Exists reports whether the student is already enrolled in the class.
func (r *EnrollmentRepository) Exists(ctx context.Context, classID, studentEmail string) (bool, error) {
	const query = `SELECT 1 FROM enrollments WHERE class_id = $1 AND student_email = $2 LIMIT 1`
	var one int
	if err := r.db.GetContext(ctx, &one, query, classID, studentEmail); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// Create inserts a new enrollment row.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = now
	}
	enrollment.UpdatedAt = now
	const query = `INSERT INTO enrollments (id, class_id, student_email, gpa, attendance, lms_activity, risk, flagged_for_mentoring, created_at, updated_at)
        VALUES (:id, :class_id, :student_email, :gpa, :attendance, :lms_activity, :risk, :flagged_for_mentoring, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update to one enrollment.
func (r *EnrollmentRepository) UpdateFields(ctx context.Context, classID, studentEmail string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	assignments := make([]string, 0, len(keys)+1)
	args := make([]interface{}, 0, len(keys)+3)
	for _, k := range keys {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", k, len(args)+1))
		args = append(args, fields[k])
	}
	assignments = append(assignments, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, time.Now().UTC())
	args = append(args, classID, studentEmail)

	query := fmt.Sprintf("UPDATE enrollments SET %s WHERE class_id = $%d AND student_email = $%d",
		strings.Join(assignments, ", "), len(args)-1, len(args))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	return nil
}

// RiskList returns the labelled students of one class.
func (r *EnrollmentRepository) RiskList(ctx context.Context, classID string) ([]models.RiskListEntry, error) {
	const query = `SELECT student_email, risk FROM enrollments
        WHERE class_id = $1 AND risk IN ('High', 'Medium', 'Low') ORDER BY student_email`
	var entries []models.RiskListEntry
	if err := r.db.SelectContext(ctx, &entries, query, classID); err != nil {
		return nil, fmt.Errorf("list risk entries: %w", err)
	}
	return entries, nil
}

// CountByRisk counts a class's enrollments carrying the given label.
func (r *EnrollmentRepository) CountByRisk(ctx context.Context, classID, risk string) (int, error) {
	const query = `SELECT COUNT(*) FROM enrollments WHERE class_id = $1 AND risk = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, classID, risk); err != nil {
		return 0, fmt.Errorf("count by risk: %w", err)
	}
	return count, nil
}

// Count returns the total enrollments of a class.
func (r *EnrollmentRepository) Count(ctx context.Context, classID string) (int, error) {
	const query = `SELECT COUNT(*) FROM enrollments WHERE class_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, classID); err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return count, nil
}

// ListRosterByInstructor flattens all enrollments across an instructor's
// classes, ordered by subject then student email.
func (r *EnrollmentRepository) ListRosterByInstructor(ctx context.Context, instructorID string) ([]models.ClassRosterRow, error) {
	const query = `SELECT e.student_email, e.class_id, c.subject_code, c.subject_name, e.risk, e.gpa, e.attendance, e.lms_activity, e.flagged_for_mentoring
        FROM enrollments e JOIN classes c ON c.id = e.class_id
        WHERE c.instructor_id = $1 ORDER BY c.subject_code, e.student_email`
	var rows []models.ClassRosterRow
	if err := r.db.SelectContext(ctx, &rows, query, instructorID); err != nil {
		return nil, fmt.Errorf("list instructor roster: %w", err)
	}
	return rows, nil
}

// ListAlertsByInstructor returns the medium/high risk subset of the roster.
func (r *EnrollmentRepository) ListAlertsByInstructor(ctx context.Context, instructorID string) ([]models.ClassRosterRow, error) {
	const query = `SELECT e.student_email, e.class_id, c.subject_code, c.subject_name, e.risk, e.gpa, e.attendance, e.lms_activity, e.flagged_for_mentoring
        FROM enrollments e JOIN classes c ON c.id = e.class_id
        WHERE c.instructor_id = $1 AND e.risk IN ('High', 'Medium') ORDER BY c.subject_code, e.student_email`
	var rows []models.ClassRosterRow
	if err := r.db.SelectContext(ctx, &rows, query, instructorID); err != nil {
		return nil, fmt.Errorf("list instructor alerts: %w", err)
	}
	return rows, nil
}
