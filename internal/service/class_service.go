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

type classRepository interface {
	ListByInstructor(ctx context.Context, instructorID string) ([]models.ClassSummary, error)
	FindSummaryByID(ctx context.Context, id string) (*models.ClassSummary, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, class *models.Class) error
}

type enrollmentRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Enrollment, error)
	Exists(ctx context.Context, classID, studentEmail string) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	UpdateFields(ctx context.Context, classID, studentEmail string, fields map[string]interface{}) error
	RiskList(ctx context.Context, classID string) ([]models.RiskListEntry, error)
	CountByRisk(ctx context.Context, classID, risk string) (int, error)
	Count(ctx context.Context, classID string) (int, error)
	ListRosterByInstructor(ctx context.Context, instructorID string) ([]models.ClassRosterRow, error)
	ListAlertsByInstructor(ctx context.Context, instructorID string) ([]models.ClassRosterRow, error)
}

// CreateClassRequest is the class creation payload.
type CreateClassRequest struct {
	SubjectCode  string `json:"subject_code" validate:"required"`
	SubjectName  string `json:"subject_name" validate:"required"`
	InstructorID string `json:"instructor_id" validate:"required"`
}

// AddStudentRequest enrolls one student email in a class.
type AddStudentRequest struct {
	StudentEmail string `json:"student_email" validate:"required,email"`
}

// BatchAddRequest enrolls many student emails at once.
type BatchAddRequest struct {
	StudentEmails []string `json:"student_emails" validate:"required"`
}

// BatchAddResult reports what a batch enrollment actually did.
type BatchAddResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// ClassService manages classes and their enrollments.
type ClassService struct {
	classes     classRepository
	enrollments enrollmentRepository
	validator   *validator.Validate
	cache       *CacheService
	logger      *zap.Logger
}

// NewClassService constructs a ClassService. The cache may be nil.
func NewClassService(classes classRepository, enrollments enrollmentRepository, validate *validator.Validate, cache *CacheService, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ClassService{classes: classes, enrollments: enrollments, validator: validate, cache: cache, logger: logger}
}

// invalidateOverview drops cached admin overviews after enrollment changes.
func (s *ClassService) invalidateOverview(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, overviewCacheKeyPrefix+"*"); err != nil {
		s.logger.Warn("overview cache invalidation failed", zap.Error(err))
	}
}

// ListByInstructor returns an instructor's classes with derived counts.
func (s *ClassService) ListByInstructor(ctx context.Context, instructorID string) ([]models.ClassSummary, error) {
	if instructorID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "instructor_id is required")
	}
	classes, err := s.classes.ListByInstructor(ctx, instructorID)
	if err != nil {
		if isInvalidUUID(err) {
			return []models.ClassSummary{}, nil
		}
		return nil, dbError(err)
	}
	return classes, nil
}

// Get returns one class with derived counts.
func (s *ClassService) Get(ctx context.Context, id string) (*models.ClassSummary, error) {
	class, err := s.classes.FindSummaryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, dbError(err)
	}
	return class, nil
}

// Create registers a class. Classes never change after creation.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	class := &models.Class{
		SubjectCode:  strings.TrimSpace(req.SubjectCode),
		SubjectName:  strings.TrimSpace(req.SubjectName),
		InstructorID: req.InstructorID,
	}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, dbError(err)
	}
	return class, nil
}

// Roster returns a class's enrollments sorted by student email.
func (s *ClassService) Roster(ctx context.Context, classID string) ([]models.Enrollment, error) {
	if err := s.requireClass(ctx, classID); err != nil {
		return nil, err
	}
	enrollments, err := s.enrollments.ListByClass(ctx, classID)
	if err != nil {
		return nil, dbError(err)
	}
	return enrollments, nil
}

// RiskSummary aggregates one class by risk bucket.
func (s *ClassService) RiskSummary(ctx context.Context, classID string) (*models.ClassRiskSummary, error) {
	if err := s.requireClass(ctx, classID); err != nil {
		return nil, err
	}

	total, err := s.enrollments.Count(ctx, classID)
	if err != nil {
		return nil, dbError(err)
	}
	high, err := s.enrollments.CountByRisk(ctx, classID, models.RiskHigh)
	if err != nil {
		return nil, dbError(err)
	}
	medium, err := s.enrollments.CountByRisk(ctx, classID, models.RiskMedium)
	if err != nil {
		return nil, dbError(err)
	}
	low, err := s.enrollments.CountByRisk(ctx, classID, models.RiskLow)
	if err != nil {
		return nil, dbError(err)
	}
	atRisk, err := s.enrollments.RiskList(ctx, classID)
	if err != nil {
		return nil, dbError(err)
	}
	if atRisk == nil {
		atRisk = []models.RiskListEntry{}
	}

	return &models.ClassRiskSummary{
		Total:      total,
		HighRisk:   high,
		MediumRisk: medium,
		LowRisk:    low,
		AtRiskList: atRisk,
	}, nil
}

// AddStudent enrolls one student. Enrolling twice is a 400.
func (s *ClassService) AddStudent(ctx context.Context, classID string, req AddStudentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if err := s.requireClass(ctx, classID); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.StudentEmail))
	exists, err := s.enrollments.Exists(ctx, classID, email)
	if err != nil {
		return nil, dbError(err)
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "Student already in this class")
	}

	enrollment := &models.Enrollment{ClassID: classID, StudentEmail: email}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, dbError(err)
	}
	s.invalidateOverview(ctx)
	return enrollment, nil
}

// BatchAddStudents enrolls many emails, skipping blanks and duplicates.
func (s *ClassService) BatchAddStudents(ctx context.Context, classID string, req BatchAddRequest) (*BatchAddResult, error) {
	if err := s.requireClass(ctx, classID); err != nil {
		return nil, err
	}

	result := &BatchAddResult{}
	seen := map[string]bool{}
	for _, raw := range req.StudentEmails {
		email := strings.ToLower(strings.TrimSpace(raw))
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true

		exists, err := s.enrollments.Exists(ctx, classID, email)
		if err != nil {
			return nil, dbError(err)
		}
		if exists {
			result.Skipped++
			continue
		}
		if err := s.enrollments.Create(ctx, &models.Enrollment{ClassID: classID, StudentEmail: email}); err != nil {
			return nil, dbError(err)
		}
		result.Added++
	}
	if result.Added > 0 {
		s.invalidateOverview(ctx)
	}
	return result, nil
}

// PatchEnrollment applies the supplied indicator fields. An empty patch is a
// successful no-op.
func (s *ClassService) PatchEnrollment(ctx context.Context, classID, studentEmail string, patch models.EnrollmentPatch) error {
	if err := s.validator.Struct(patch); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment patch")
	}
	if err := s.requireClass(ctx, classID); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(studentEmail))
	exists, err := s.enrollments.Exists(ctx, classID, email)
	if err != nil {
		return dbError(err)
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}

	if patch.Empty() {
		return nil
	}

	fields := map[string]interface{}{}
	if patch.GPA != nil {
		fields["gpa"] = *patch.GPA
	}
	if patch.Attendance != nil {
		fields["attendance"] = *patch.Attendance
	}
	if patch.LMSActivity != nil {
		fields["lms_activity"] = *patch.LMSActivity
	}
	if patch.Risk != nil {
		fields["risk"] = *patch.Risk
	}
	if patch.FlaggedForMentoring != nil {
		fields["flagged_for_mentoring"] = *patch.FlaggedForMentoring
	}

	if err := s.enrollments.UpdateFields(ctx, classID, email, fields); err != nil {
		return dbError(err)
	}
	s.invalidateOverview(ctx)
	return nil
}

// InstructorRoster flattens every enrollment across an instructor's classes.
func (s *ClassService) InstructorRoster(ctx context.Context, instructorID string) ([]models.ClassRosterRow, error) {
	if instructorID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "instructor_id is required")
	}
	rows, err := s.enrollments.ListRosterByInstructor(ctx, instructorID)
	if err != nil {
		if isInvalidUUID(err) {
			return []models.ClassRosterRow{}, nil
		}
		return nil, dbError(err)
	}
	return rows, nil
}

// InstructorAlerts returns the High and Medium subset of the roster.
func (s *ClassService) InstructorAlerts(ctx context.Context, instructorID string) ([]models.ClassRosterRow, error) {
	if instructorID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "instructor_id is required")
	}
	rows, err := s.enrollments.ListAlertsByInstructor(ctx, instructorID)
	if err != nil {
		if isInvalidUUID(err) {
			return []models.ClassRosterRow{}, nil
		}
		return nil, dbError(err)
	}
	return rows, nil
}

func (s *ClassService) requireClass(ctx context.Context, classID string) error {
	exists, err := s.classes.Exists(ctx, classID)
	if err != nil {
		if isInvalidUUID(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return dbError(err)
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	return nil
}
