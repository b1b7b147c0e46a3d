package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aews-api/internal/models"
	appErrors "github.com/noah-isme/aews-api/pkg/errors"
)

type mockNotificationRepo struct {
	feed      []models.Notification
	marked    bool
	markedAll int64
	lastRole  string
	lastID    string
}

func (m *mockNotificationRepo) ListByRole(ctx context.Context, role string) ([]models.Notification, error) {
	m.lastRole = role
	return m.feed, nil
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = "n1"
	return nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, role, id string) (bool, error) {
	m.lastRole = role
	m.lastID = id
	return m.marked, nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, role string) (int64, error) {
	m.lastRole = role
	return m.markedAll, nil
}

func TestNotificationListRejectsUnknownRole(t *testing.T) {
	svc := NewNotificationService(&mockNotificationRepo{}, nil, nil)

	_, err := svc.ListByRole(context.Background(), "student")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestNotificationListEmptyFeedIsNotNil(t *testing.T) {
	svc := NewNotificationService(&mockNotificationRepo{}, nil, nil)

	feed, err := svc.ListByRole(context.Background(), "admin")
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestNotificationCreateStartsUnread(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, nil, nil)

	notification, err := svc.Create(context.Background(), CreateNotificationRequest{
		Role:  "instructor",
		Title: "GPA alerts updated",
		Type:  "alert",
	})
	require.NoError(t, err)
	assert.Equal(t, "alert", notification.Type)
	assert.False(t, notification.Read)
}

func TestNotificationMarkReadScopedToRole(t *testing.T) {
	repo := &mockNotificationRepo{marked: false}
	svc := NewNotificationService(repo, nil, nil)

	err := svc.MarkRead(context.Background(), "admin", "n1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
	assert.Equal(t, "admin", repo.lastRole)
	assert.Equal(t, "n1", repo.lastID)
}

func TestNotificationMarkReadByIDAlone(t *testing.T) {
	repo := &mockNotificationRepo{marked: true}
	svc := NewNotificationService(repo, nil, nil)

	err := svc.MarkRead(context.Background(), "", "n1")
	require.NoError(t, err)
	assert.Equal(t, "", repo.lastRole)
	assert.Equal(t, "n1", repo.lastID)
}

func TestNotificationMarkReadRejectsUnknownRole(t *testing.T) {
	svc := NewNotificationService(&mockNotificationRepo{marked: true}, nil, nil)

	err := svc.MarkRead(context.Background(), "student", "n1")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestNotificationMarkAllReadReturnsCount(t *testing.T) {
	repo := &mockNotificationRepo{markedAll: 3}
	svc := NewNotificationService(repo, nil, nil)

	updated, err := svc.MarkAllRead(context.Background(), "amu-staff")
	require.NoError(t, err)
	assert.EqualValues(t, 3, updated)
}
