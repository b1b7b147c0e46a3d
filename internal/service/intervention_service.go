package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/aews-api/internal/models"
	appErrors "github.com/noah-isme/aews-api/pkg/errors"
)

type interventionRepository interface {
	List(ctx context.Context, status string) ([]models.Intervention, error)
	FindByID(ctx context.Context, id string) (*models.Intervention, error)
	Create(ctx context.Context, intervention *models.Intervention) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) (bool, error)
}

// CreateInterventionRequest is the intervention creation payload.
type CreateInterventionRequest struct {
	Student    string  `json:"student" validate:"required"`
	Department string  `json:"department"`
	Course     string  `json:"course"`
	Type       string  `json:"type" validate:"required"`
	Status     string  `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Instructor string  `json:"instructor"`
	Due        *string `json:"due"`
}

// UpdateInterventionRequest lists the mutable intervention fields.
type UpdateInterventionRequest struct {
	Student     *string `json:"student"`
	Department  *string `json:"department"`
	Course      *string `json:"course"`
	Type        *string `json:"type"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Instructor  *string `json:"instructor"`
	Due         *string `json:"due"`
	CompletedOn *string `json:"completed"`
}

// InterventionService manages support actions recorded against students.
type InterventionService struct {
	repo      interventionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInterventionService constructs an InterventionService.
func NewInterventionService(repo interventionRepository, validate *validator.Validate, logger *zap.Logger) *InterventionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &InterventionService{repo: repo, validator: validate, logger: logger}
}

// List returns interventions, optionally filtered by status.
func (s *InterventionService) List(ctx context.Context, status string) ([]models.Intervention, error) {
	if status != "" && status != models.InterventionPending && status != models.InterventionInProgress && status != models.InterventionCompleted {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown status")
	}
	interventions, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, dbError(err)
	}
	return interventions, nil
}

// Get returns one intervention.
func (s *InterventionService) Get(ctx context.Context, id string) (*models.Intervention, error) {
	intervention, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "intervention not found")
		}
		return nil, dbError(err)
	}
	return intervention, nil
}

// Create records a new intervention, defaulting to pending.
func (s *InterventionService) Create(ctx context.Context, req CreateInterventionRequest) (*models.Intervention, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid intervention payload")
	}
	status := req.Status
	if status == "" {
		status = models.InterventionPending
	}
	intervention := &models.Intervention{
		Student:    req.Student,
		Department: req.Department,
		Course:     req.Course,
		Type:       req.Type,
		Status:     status,
		Instructor: req.Instructor,
		Due:        req.Due,
	}
	if err := s.repo.Create(ctx, intervention); err != nil {
		return nil, dbError(err)
	}
	return intervention, nil
}

// Update applies the supplied fields to one intervention.
func (s *InterventionService) Update(ctx context.Context, id string, req UpdateInterventionRequest) (*models.Intervention, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid intervention payload")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Student != nil {
		fields["student"] = *req.Student
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.Course != nil {
		fields["course"] = *req.Course
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Instructor != nil {
		fields["instructor"] = *req.Instructor
	}
	if req.Due != nil {
		fields["due"] = *req.Due
	}
	if req.CompletedOn != nil {
		fields["completed_on"] = *req.CompletedOn
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, dbError(err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes one intervention.
func (s *InterventionService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		if isInvalidUUID(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "intervention not found")
		}
		return dbError(err)
	}
	if !affected {
		return appErrors.Clone(appErrors.ErrNotFound, "intervention not found")
	}
	return nil
}
