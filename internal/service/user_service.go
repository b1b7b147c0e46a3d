package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/aews-api/internal/models"
	appErrors "github.com/noah-isme/aews-api/pkg/errors"
)

type userAccountRepository interface {
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByRoleEmail(ctx context.Context, role models.AccountRole, email string) (*models.Account, error)
	List(ctx context.Context, filter models.AccountFilter) ([]models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) (bool, error)
}

// CreateUserRequest is the admin-side account creation payload. Accounts
// created this way skip email verification.
type CreateUserRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	Role          string `json:"role" validate:"required"`
	Department    string `json:"department"`
	ContactNumber string `json:"contact_number"`
	Status        string `json:"status"`
}

// UpdateUserRequest lists the mutable account fields. Nil fields stay as they
// are; the password never changes through this path.
type UpdateUserRequest struct {
	Name          *string `json:"name"`
	Department    *string `json:"department"`
	ContactNumber *string `json:"contact_number"`
	Status        *string `json:"status" validate:"omitempty,oneof=active inactive pending"`
}

// UserService manages accounts on behalf of administrators.
type UserService struct {
	repo      userAccountRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(repo userAccountRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// List returns accounts filtered by role and search term. Role "all" or ""
// matches every partition.
func (s *UserService) List(ctx context.Context, role, search string) ([]models.AccountInfo, error) {
	filter := models.AccountFilter{Search: strings.TrimSpace(search)}
	role = strings.ToLower(strings.TrimSpace(role))
	if role != "" && role != "all" {
		if !models.ValidRole(role) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
		}
		r := models.AccountRole(role)
		filter.Role = &r
	}

	accounts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dbError(err)
	}
	infos := make([]models.AccountInfo, 0, len(accounts))
	for i := range accounts {
		infos = append(infos, accounts[i].Info())
	}
	return infos, nil
}

// Get returns one account by id.
func (s *UserService) Get(ctx context.Context, id string) (*models.AccountInfo, error) {
	account, err := s.findAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	info := account.Info()
	return &info, nil
}

// Create registers an account on an admin's behalf, already verified.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.AccountInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid account payload")
	}
	if !models.ValidRole(req.Role) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	role := models.AccountRole(req.Role)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.FindByRoleEmail(ctx, role, email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "Email already registered")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, dbError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	status := req.Status
	if status == "" {
		status = models.StatusActive
	}
	account := &models.Account{
		Name:          req.Name,
		Email:         email,
		Role:          role,
		Department:    req.Department,
		ContactNumber: req.ContactNumber,
		Status:        status,
		PasswordHash:  string(hash),
		EmailVerified: true,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, dbError(err)
	}
	info := account.Info()
	return &info, nil
}

// Update applies the supplied fields to one account.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*models.AccountInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid account payload")
	}

	if _, err := s.findAccount(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.ContactNumber != nil {
		fields["contact_number"] = *req.ContactNumber
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, dbError(err)
		}
	}

	account, err := s.findAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	info := account.Info()
	return &info, nil
}

// Delete removes one account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		if isInvalidUUID(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return dbError(err)
	}
	if !affected {
		return appErrors.Clone(appErrors.ErrNotFound, "account not found")
	}
	return nil
}

func (s *UserService) findAccount(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, dbError(err)
	}
	return account, nil
}
