package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/aews-api/internal/models"
)

// NotificationRepository manages persistence for role-scoped notifications.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs a NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// ListByRole returns notifications for one role, newest first.
func (r *NotificationRepository) ListByRole(ctx context.Context, role string) ([]models.Notification, error) {
	const query = `SELECT id, role, title, body, type, read, created_at
        FROM notifications WHERE role = $1 ORDER BY created_at DESC`
	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, role); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// Create inserts a notification.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO notifications (id, role, title, body, type, read, created_at)
        VALUES (:id, :role, :title, :body, :type, :read, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, notification); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// MarkRead flags one notification as read and reports whether it existed.
// An empty role matches the notification by id alone.
func (r *NotificationRepository) MarkRead(ctx context.Context, role, id string) (bool, error) {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1`
	args := []interface{}{id}
	if role != "" {
		query += ` AND role = $2`
		args = append(args, role)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	return affected > 0, nil
}

// MarkAllRead flags every unread notification for a role as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, role string) (int64, error) {
	const query = `UPDATE notifications SET read = TRUE WHERE role = $1 AND read = FALSE`
	res, err := r.db.ExecContext(ctx, query, role)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return affected, nil
}
