package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/aews-api/internal/models"
	appErrors "github.com/noah-isme/aews-api/pkg/errors"
)

type notificationRepository interface {
	ListByRole(ctx context.Context, role string) ([]models.Notification, error)
	Create(ctx context.Context, notification *models.Notification) error
	MarkRead(ctx context.Context, role, id string) (bool, error)
	MarkAllRead(ctx context.Context, role string) (int64, error)
}

// CreateNotificationRequest is the notification creation payload.
type CreateNotificationRequest struct {
	Role  string `json:"role" validate:"required"`
	Title string `json:"title" validate:"required"`
	Body  string `json:"body"`
	Type  string `json:"type"`
}

// NotificationService manages the per-role notification feeds.
type NotificationService struct {
	repo      notificationRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(repo notificationRepository, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &NotificationService{repo: repo, validator: validate, logger: logger}
}

// ListByRole returns a role's feed, newest first.
func (s *NotificationService) ListByRole(ctx context.Context, role string) ([]models.Notification, error) {
	if !models.ValidRole(role) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	notifications, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, dbError(err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

// Create appends a message to a role's feed.
func (s *NotificationService) Create(ctx context.Context, req CreateNotificationRequest) (*models.Notification, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notification payload")
	}
	if !models.ValidRole(req.Role) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	notification := &models.Notification{
		Role:  req.Role,
		Title: req.Title,
		Body:  req.Body,
		Type:  req.Type,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, dbError(err)
	}
	return notification, nil
}

// MarkRead flags one notification as read. The role is optional; when given
// it scopes the update to that role's feed.
func (s *NotificationService) MarkRead(ctx context.Context, role, id string) error {
	if role != "" && !models.ValidRole(role) {
		return appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	affected, err := s.repo.MarkRead(ctx, role, id)
	if err != nil {
		if isInvalidUUID(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
		}
		return dbError(err)
	}
	if !affected {
		return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
	}
	return nil
}

// MarkAllRead flags a role's whole feed as read and returns the count.
func (s *NotificationService) MarkAllRead(ctx context.Context, role string) (int64, error) {
	if !models.ValidRole(role) {
		return 0, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	updated, err := s.repo.MarkAllRead(ctx, role)
	if err != nil {
		return 0, dbError(err)
	}
	return updated, nil
}
