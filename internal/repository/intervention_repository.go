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

// InterventionRepository manages persistence for interventions.
type InterventionRepository struct {
	db *sqlx.DB
}

// NewInterventionRepository constructs an InterventionRepository.
func NewInterventionRepository(db *sqlx.DB) *InterventionRepository {
	return &InterventionRepository{db: db}
}

// List returns interventions, optionally filtered by status.
func (r *InterventionRepository) List(ctx context.Context, status string) ([]models.Intervention, error) {
	query := `SELECT id, student, department, course, type, status, instructor, due, completed_on, created_at, updated_at FROM interventions`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	var interventions []models.Intervention
	if err := r.db.SelectContext(ctx, &interventions, query, args...); err != nil {
		return nil, fmt.Errorf("list interventions: %w", err)
	}
	return interventions, nil
}

// FindByID fetches one intervention.
func (r *InterventionRepository) FindByID(ctx context.Context, id string) (*models.Intervention, error) {
	const query = `SELECT id, student, department, course, type, status, instructor, due, completed_on, created_at, updated_at
        FROM interventions WHERE id = $1 LIMIT 1`
	var intervention models.Intervention
	if err := r.db.GetContext(ctx, &intervention, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find intervention: %w", err)
	}
	return &intervention, nil
}

// Create inserts a new intervention.
func (r *InterventionRepository) Create(ctx context.Context, intervention *models.Intervention) error {
	if intervention.ID == "" {
		intervention.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if intervention.CreatedAt.IsZero() {
		intervention.CreatedAt = now
	}
	intervention.UpdatedAt = now
	const query = `INSERT INTO interventions (id, student, department, course, type, status, instructor, due, completed_on, created_at, updated_at)
        VALUES (:id, :student, :department, :course, :type, :status, :instructor, :due, :completed_on, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, intervention); err != nil {
		return fmt.Errorf("create intervention: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update to one intervention.
func (r *InterventionRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
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

	query := fmt.Sprintf("UPDATE interventions SET %s WHERE id = $%d", strings.Join(assignments, ", "), len(args))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update intervention: %w", err)
	}
	return nil
}

// Delete removes an intervention and reports whether a row was affected.
func (r *InterventionRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM interventions WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete intervention: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete intervention: %w", err)
	}
	return affected > 0, nil
}
