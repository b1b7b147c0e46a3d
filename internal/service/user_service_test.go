package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/aews-api/internal/models"
	appErrors "github.com/noah-isme/aews-api/pkg/errors"
)

type mockUserRepo struct {
	byID        map[string]*models.Account
	byRoleEmail map[string]*models.Account
	listed      []models.Account
	lastFilter  models.AccountFilter
	lastFields  map[string]interface{}
	deleted     bool
	deleteErr   error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.Account, error) {
	if a, ok := m.byID[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByRoleEmail(ctx context.Context, role models.AccountRole, email string) (*models.Account, error) {
	if a, ok := m.byRoleEmail[string(role)+":"+email]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) List(ctx context.Context, filter models.AccountFilter) ([]models.Account, error) {
	m.lastFilter = filter
	return m.listed, nil
}

func (m *mockUserRepo) Create(ctx context.Context, account *models.Account) error {
	account.ID = "new-id"
	return nil
}

func (m *mockUserRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	m.lastFields = fields
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteErr != nil {
		return false, m.deleteErr
	}
	return m.deleted, nil
}

func TestUserListRoleAllMatchesEveryPartition(t *testing.T) {
	repo := &mockUserRepo{listed: []models.Account{{ID: "a1", Role: models.RoleAdmin}}}
	svc := NewUserService(repo, nil, nil)

	infos, err := svc.List(context.Background(), "all", "")
	require.NoError(t, err)
	assert.Len(t, infos, 1)
	assert.Nil(t, repo.lastFilter.Role)
}

func TestUserListRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, nil)

	_, err := svc.List(context.Background(), "superuser", "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{byRoleEmail: map[string]*models.Account{
		"instructor:dana@campus.edu": {ID: "a1"},
	}}
	svc := NewUserService(repo, nil, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Name:     "Dana",
		Email:    "Dana@campus.edu",
		Password: "secret123",
		Role:     "instructor",
	})
	require.Error(t, err)
	assert.Equal(t, "Email already registered", appErrors.FromError(err).Message)
}

func TestUserCreateDefaultsActiveAndVerified(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewUserService(repo, nil, nil)

	info, err := svc.Create(context.Background(), CreateUserRequest{
		Name:     "Dana",
		Email:    "DANA@campus.edu",
		Password: "secret123",
		Role:     "instructor",
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@campus.edu", info.Email)
	assert.Equal(t, models.StatusActive, info.Status)
	assert.True(t, info.EmailVerified)
}

func TestUserUpdateAppliesOnlySuppliedFields(t *testing.T) {
	account := &models.Account{ID: "a1", Name: "Dana", Role: models.RoleInstructor}
	repo := &mockUserRepo{byID: map[string]*models.Account{"a1": account}}
	svc := NewUserService(repo, nil, nil)

	name := "Dana L"
	_, err := svc.Update(context.Background(), "a1", UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "Dana L"}, repo.lastFields)
}

func TestUserUpdateNeverTouchesPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("original"), bcrypt.DefaultCost)
	account := &models.Account{ID: "a1", PasswordHash: string(hash), Role: models.RoleInstructor}
	repo := &mockUserRepo{byID: map[string]*models.Account{"a1": account}}
	svc := NewUserService(repo, nil, nil)

	status := "inactive"
	_, err := svc.Update(context.Background(), "a1", UpdateUserRequest{Status: &status})
	require.NoError(t, err)
	_, hasPassword := repo.lastFields["password_hash"]
	assert.False(t, hasPassword)
}

func TestUserGetUnknownIDIsNotFound(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestUserDeleteInvalidUUIDIsNotFound(t *testing.T) {
	repo := &mockUserRepo{deleteErr: &pq.Error{Code: "22P02"}}
	svc := NewUserService(repo, nil, nil)

	err := svc.Delete(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestUserDeleteMissingRowIsNotFound(t *testing.T) {
	svc := NewUserService(&mockUserRepo{deleted: false}, nil, nil)

	err := svc.Delete(context.Background(), "a1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}
