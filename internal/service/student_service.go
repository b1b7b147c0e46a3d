package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/aews-api/internal/models"
	appErrors "github.com/noah-isme/aews-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) (bool, error)
}

// CreateStudentRequest is the directory creation payload.
type CreateStudentRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department"`
	Course     string `json:"course"`
	Risk       string `json:"risk" validate:"omitempty,oneof=High Medium Low"`
	Instructor string `json:"instructor"`
}

// UpdateStudentRequest lists the mutable directory fields.
type UpdateStudentRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Department *string `json:"department"`
	Course     *string `json:"course"`
	Risk       *string `json:"risk" validate:"omitempty,oneof=High Medium Low"`
	Instructor *string `json:"instructor"`
}

// StudentService manages the flat student directory that predates classes.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns directory entries, optionally filtered by risk and search term.
func (s *StudentService) List(ctx context.Context, risk, search string) ([]models.Student, error) {
	if risk != "" && !models.ValidRisk(risk) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown risk level")
	}
	students, err := s.repo.List(ctx, models.StudentFilter{Risk: risk, Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, dbError(err)
	}
	return students, nil
}

// Get returns one directory entry.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, dbError(err)
	}
	return student, nil
}

// Create inserts a directory entry.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := &models.Student{
		Name:       req.Name,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Department: req.Department,
		Course:     req.Course,
		Risk:       req.Risk,
		Instructor: req.Instructor,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, dbError(err)
	}
	return student, nil
}

// Update applies the supplied fields to one directory entry.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.Course != nil {
		fields["course"] = *req.Course
	}
	if req.Risk != nil {
		fields["risk"] = *req.Risk
	}
	if req.Instructor != nil {
		fields["instructor"] = *req.Instructor
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, dbError(err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes one directory entry.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		if isInvalidUUID(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return dbError(err)
	}
	if !affected {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return nil
}
