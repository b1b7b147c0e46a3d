package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/aews-api/internal/models"
	appErrors "github.com/noah-isme/aews-api/pkg/errors"
)

type mockStatsRepo struct {
	students      int
	atRisk        int
	instructors   int
	interventions int
	departments   []string
	deptStats     []models.DepartmentStats
	instrStats    []models.InstructorStats
	atRiskRows    []models.AtRiskRow
	distribution  []models.RiskBucket
	enrollments   []models.StudentEnrollmentRow
}

func (m *mockStatsRepo) CountStudents(ctx context.Context, department string) (int, error) {
	return m.students, nil
}

func (m *mockStatsRepo) CountAtRisk(ctx context.Context, department string) (int, error) {
	return m.atRisk, nil
}

func (m *mockStatsRepo) CountInstructors(ctx context.Context, department string) (int, error) {
	return m.instructors, nil
}

func (m *mockStatsRepo) CountInterventions(ctx context.Context) (int, error) {
	return m.interventions, nil
}

func (m *mockStatsRepo) DepartmentBreakdown(ctx context.Context) ([]models.DepartmentStats, error) {
	return m.deptStats, nil
}

func (m *mockStatsRepo) InstructorBreakdown(ctx context.Context) ([]models.InstructorStats, error) {
	return m.instrStats, nil
}

func (m *mockStatsRepo) AtRiskRows(ctx context.Context, department string) ([]models.AtRiskRow, error) {
	return m.atRiskRows, nil
}

func (m *mockStatsRepo) RiskDistribution(ctx context.Context) ([]models.RiskBucket, error) {
	return m.distribution, nil
}

func (m *mockStatsRepo) Departments(ctx context.Context) ([]string, error) {
	return m.departments, nil
}

func (m *mockStatsRepo) StudentEnrollments(ctx context.Context, email string) ([]models.StudentEnrollmentRow, error) {
	return m.enrollments, nil
}

type mockModerationRepo struct {
	accounts  map[string]*models.Account
	decisions []string
}

func (m *mockModerationRepo) FindByID(ctx context.Context, id string) (*models.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockModerationRepo) ListPending(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	for _, a := range m.accounts {
		if a.Status == models.StatusPending {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockModerationRepo) SetDecision(ctx context.Context, id, status string, markVerified bool) error {
	m.decisions = append(m.decisions, id+":"+status)
	return nil
}

type mockDecisionMailer struct {
	sendOK   bool
	approved []bool
}

func (m *mockDecisionMailer) SendAccountDecision(to, name string, approved bool) (bool, string) {
	m.approved = append(m.approved, approved)
	if m.sendOK {
		return true, ""
	}
	return false, "dial failed"
}

func newAdminService(stats *mockStatsRepo, accounts *mockModerationRepo, mail *mockDecisionMailer) *AdminService {
	return NewAdminService(stats, accounts, mail, nil, 0, zap.NewNop())
}

func TestOverviewEmptyStore(t *testing.T) {
	svc := newAdminService(&mockStatsRepo{}, &mockModerationRepo{}, &mockDecisionMailer{})

	overview, err := svc.Overview(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, overview.TotalStudents)
	assert.Equal(t, float64(0), overview.AtRiskPercent)
}

func TestOverviewPercentOneDecimal(t *testing.T) {
	svc := newAdminService(&mockStatsRepo{students: 15, atRisk: 4, instructors: 2, interventions: 3}, &mockModerationRepo{}, &mockDecisionMailer{})

	overview, err := svc.Overview(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 26.7, overview.AtRiskPercent)
	assert.Equal(t, 4, overview.ActiveAlerts)
	assert.Equal(t, 3, overview.InterventionsCount)
}

func TestDepartmentBreakdownRates(t *testing.T) {
	svc := newAdminService(&mockStatsRepo{deptStats: []models.DepartmentStats{
		{Name: "Computer Science", Total: 15, AtRisk: 4, Instructors: 2},
		{Name: "Mathematics", Total: 0, AtRisk: 0, Instructors: 1},
	}}, &mockModerationRepo{}, &mockDecisionMailer{})

	stats, err := svc.DepartmentBreakdown(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 26.7, stats[0].Rate)
	assert.Equal(t, float64(0), stats[1].Rate)
}

func TestRiskDistributionAlwaysThreeBuckets(t *testing.T) {
	svc := newAdminService(&mockStatsRepo{distribution: []models.RiskBucket{
		{Risk: "High", Count: 2},
		{Risk: "Unlabelled", Count: 5},
	}}, &mockModerationRepo{}, &mockDecisionMailer{})

	buckets, err := svc.RiskDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 3)
	assert.Equal(t, "High", buckets[0].Risk)
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, "Medium", buckets[1].Risk)
	assert.Equal(t, 0, buckets[1].Count)
	assert.Equal(t, "Low", buckets[2].Risk)
	assert.Equal(t, 5, buckets[2].Count)
}

func TestStudentDetailNotFound(t *testing.T) {
	svc := newAdminService(&mockStatsRepo{}, &mockModerationRepo{}, &mockDecisionMailer{})

	_, err := svc.StudentDetail(context.Background(), "ghost@campus.edu")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestStudentDetailAggregates(t *testing.T) {
	high := "High"
	low := "Low"
	svc := newAdminService(&mockStatsRepo{enrollments: []models.StudentEnrollmentRow{
		{ClassID: "c1", SubjectCode: "CS101", SubjectName: "Intro", Risk: &high},
		{ClassID: "c2", SubjectCode: "MA201", SubjectName: "Calculus", Risk: &low},
	}}, &mockModerationRepo{}, &mockDecisionMailer{})

	summary, err := svc.StudentDetail(context.Background(), "a@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ClassCount)
	assert.Equal(t, 1, summary.AtRiskCount)
	assert.Equal(t, "CS101 Intro", summary.Enrollments[0].Course)
}

func TestApprovePendingAccount(t *testing.T) {
	accounts := &mockModerationRepo{accounts: map[string]*models.Account{
		"p1": {ID: "p1", Name: "Dana", Email: "dana@campus.edu", Role: models.RoleInstructor, Status: models.StatusPending},
	}}
	mail := &mockDecisionMailer{sendOK: true}
	svc := newAdminService(&mockStatsRepo{}, accounts, mail)

	result, err := svc.Approve(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, result.Account.Status)
	assert.True(t, result.Account.EmailVerified)
	assert.True(t, result.EmailSent)
	require.Len(t, mail.approved, 1)
	assert.True(t, mail.approved[0])
	assert.Equal(t, []string{"p1:active"}, accounts.decisions)
}

func TestDeclinePendingAccount(t *testing.T) {
	accounts := &mockModerationRepo{accounts: map[string]*models.Account{
		"p1": {ID: "p1", Name: "Dana", Email: "dana@campus.edu", Role: models.RoleInstructor, Status: models.StatusPending},
	}}
	mail := &mockDecisionMailer{}
	svc := newAdminService(&mockStatsRepo{}, accounts, mail)

	result, err := svc.Decline(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, result.Account.Status)
	assert.False(t, result.EmailSent)
	assert.Equal(t, []string{"p1:inactive"}, accounts.decisions)
}

func TestDecideNonPendingAccount(t *testing.T) {
	accounts := &mockModerationRepo{accounts: map[string]*models.Account{
		"a1": {ID: "a1", Status: models.StatusActive},
	}}
	svc := newAdminService(&mockStatsRepo{}, accounts, &mockDecisionMailer{})

	_, err := svc.Approve(context.Background(), "a1")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)

	_, err = svc.Approve(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestDecisionInvalidatesOverviewCache(t *testing.T) {
	accounts := &mockModerationRepo{accounts: map[string]*models.Account{
		"p1": {ID: "p1", Name: "Dana", Email: "dana@campus.edu", Role: models.RoleInstructor, Status: models.StatusPending},
	}}
	cacheRepo := &mockCacheRepo{}
	cache := NewCacheService(cacheRepo, nil, 0, zap.NewNop(), true)
	svc := NewAdminService(&mockStatsRepo{}, accounts, &mockDecisionMailer{sendOK: true}, cache, 0, zap.NewNop())

	_, err := svc.Approve(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"admin:overview:*"}, cacheRepo.patterns)
}

func TestTrendsSinglePoint(t *testing.T) {
	svc := newAdminService(&mockStatsRepo{students: 10, atRisk: 3}, &mockModerationRepo{}, &mockDecisionMailer{})

	points, err := svc.Trends(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 10, points[0].Total)
	assert.Equal(t, 3, points[0].AtRisk)
}
