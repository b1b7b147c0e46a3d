package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/aews-api/internal/models"
)

const classSummaryQuery = `SELECT c.id, c.subject_code, c.subject_name, c.instructor_id, c.created_at,
        (SELECT COUNT(*) FROM enrollments e WHERE e.class_id = c.id) AS student_count,
        (SELECT COUNT(*) FROM enrollments e WHERE e.class_id = c.id AND e.risk IN ('High', 'Medium')) AS at_risk_count
        FROM classes c`

// ClassRepository manages persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// ListByInstructor returns an instructor's classes with enrollment counts.
func (r *ClassRepository) ListByInstructor(ctx context.Context, instructorID string) ([]models.ClassSummary, error) {
	query := classSummaryQuery + ` WHERE c.instructor_id = $1 ORDER BY c.subject_code`
	var classes []models.ClassSummary
	if err := r.db.SelectContext(ctx, &classes, query, instructorID); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindSummaryByID fetches a class with enrollment counts.
func (r *ClassRepository) FindSummaryByID(ctx context.Context, id string) (*models.ClassSummary, error) {
	query := classSummaryQuery + ` WHERE c.id = $1 LIMIT 1`
	var class models.ClassSummary
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return &class, nil
}

// Exists reports whether a class row exists.
func (r *ClassRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT 1 FROM classes WHERE id = $1 LIMIT 1`
	var one int
	if err := r.db.GetContext(ctx, &one, query, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check class: %w", err)
	}
	return true, nil
}

// Create inserts a new class. Classes never change after creation.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	if class.CreatedAt.IsZero() {
		class.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO classes (id, subject_code, subject_name, instructor_id, created_at)
        VALUES (:id, :subject_code, :subject_name, :instructor_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}
