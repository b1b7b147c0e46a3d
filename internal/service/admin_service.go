package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/aews-api/internal/models"
	appErrors "github.com/noah-isme/aews-api/pkg/errors"
)

type adminStatsRepository interface {
	CountStudents(ctx context.Context, department string) (int, error)
	CountAtRisk(ctx context.Context, department string) (int, error)
	CountInstructors(ctx context.Context, department string) (int, error)
	CountInterventions(ctx context.Context) (int, error)
	DepartmentBreakdown(ctx context.Context) ([]models.DepartmentStats, error)
	InstructorBreakdown(ctx context.Context) ([]models.InstructorStats, error)
	AtRiskRows(ctx context.Context, department string) ([]models.AtRiskRow, error)
	RiskDistribution(ctx context.Context) ([]models.RiskBucket, error)
	Departments(ctx context.Context) ([]string, error)
	StudentEnrollments(ctx context.Context, email string) ([]models.StudentEnrollmentRow, error)
}

type moderationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Account, error)
	ListPending(ctx context.Context) ([]models.Account, error)
	SetDecision(ctx context.Context, id, status string, markVerified bool) error
}

// DecisionMailer is the slice of the mailer moderation needs.
type DecisionMailer interface {
	SendAccountDecision(to, name string, approved bool) (bool, string)
}

// DecisionResult reports a moderation outcome plus whether the notice mail
// went out.
type DecisionResult struct {
	Account   models.AccountInfo `json:"account"`
	EmailSent bool               `json:"email_sent"`
}

// StudentSummary aggregates one student's enrollments for the admin detail page.
type StudentSummary struct {
	Email       string                        `json:"email"`
	Enrollments []models.StudentEnrollmentRow `json:"enrollments"`
	ClassCount  int                           `json:"class_count"`
	AtRiskCount int                           `json:"at_risk_count"`
}

const overviewCacheKeyPrefix = "admin:overview:"

// AdminService serves the dashboard aggregates and account moderation.
type AdminService struct {
	stats    adminStatsRepository
	accounts moderationRepository
	mailer   DecisionMailer
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAdminService constructs an AdminService.
func NewAdminService(stats adminStatsRepository, accounts moderationRepository, mailer DecisionMailer, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{stats: stats, accounts: accounts, mailer: mailer, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Overview computes the dashboard KPIs, optionally scoped to one department.
// Results are cached when Redis is enabled.
func (s *AdminService) Overview(ctx context.Context, department string) (*models.Overview, error) {
	cacheKey := overviewCacheKeyPrefix + department
	var cached models.Overview
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	total, err := s.stats.CountStudents(ctx, department)
	if err != nil {
		return nil, dbError(err)
	}
	atRisk, err := s.stats.CountAtRisk(ctx, department)
	if err != nil {
		return nil, dbError(err)
	}
	instructors, err := s.stats.CountInstructors(ctx, department)
	if err != nil {
		return nil, dbError(err)
	}
	interventions, err := s.stats.CountInterventions(ctx)
	if err != nil {
		return nil, dbError(err)
	}

	// Active alerts are the at-risk enrollments themselves; no separate
	// alert store exists.
	overview := &models.Overview{
		TotalStudents:      total,
		AtRiskStudents:     atRisk,
		InstructorsCount:   instructors,
		ActiveAlerts:       atRisk,
		InterventionsCount: interventions,
		AtRiskPercent:      percent(atRisk, total),
	}

	if err := s.cache.Set(ctx, cacheKey, overview, s.cacheTTL); err != nil {
		s.logger.Warn("overview cache write failed", zap.Error(err))
	}
	return overview, nil
}

// Departments lists the distinct non-empty instructor departments.
func (s *AdminService) Departments(ctx context.Context) ([]string, error) {
	departments, err := s.stats.Departments(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	if departments == nil {
		departments = []string{}
	}
	return departments, nil
}

// StudentsAtRisk lists every at-risk enrollment with class and instructor.
func (s *AdminService) StudentsAtRisk(ctx context.Context, department string) ([]models.AtRiskRow, error) {
	rows, err := s.stats.AtRiskRows(ctx, department)
	if err != nil {
		return nil, dbError(err)
	}
	if rows == nil {
		rows = []models.AtRiskRow{}
	}
	return rows, nil
}

// DepartmentBreakdown returns per-department totals with a derived at-risk rate.
func (s *AdminService) DepartmentBreakdown(ctx context.Context) ([]models.DepartmentStats, error) {
	stats, err := s.stats.DepartmentBreakdown(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	for i := range stats {
		stats[i].Rate = percent(stats[i].AtRisk, stats[i].Total)
	}
	if stats == nil {
		stats = []models.DepartmentStats{}
	}
	return stats, nil
}

// InstructorBreakdown summarises every instructor's classes and students.
func (s *AdminService) InstructorBreakdown(ctx context.Context) ([]models.InstructorStats, error) {
	stats, err := s.stats.InstructorBreakdown(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	if stats == nil {
		stats = []models.InstructorStats{}
	}
	return stats, nil
}

// Trends reports a single snapshot point. The store keeps no history, so the
// chart has exactly one entry for the current month.
func (s *AdminService) Trends(ctx context.Context) ([]models.TrendPoint, error) {
	total, err := s.stats.CountStudents(ctx, "")
	if err != nil {
		return nil, dbError(err)
	}
	atRisk, err := s.stats.CountAtRisk(ctx, "")
	if err != nil {
		return nil, dbError(err)
	}
	return []models.TrendPoint{{
		Name:   time.Now().UTC().Format("Jan"),
		AtRisk: atRisk,
		Total:  total,
	}}, nil
}

// RiskDistribution always returns the three buckets in High, Medium, Low
// order. Labels outside the known set count as Low.
func (s *AdminService) RiskDistribution(ctx context.Context) ([]models.RiskBucket, error) {
	raw, err := s.stats.RiskDistribution(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	counts := map[string]int{models.RiskHigh: 0, models.RiskMedium: 0, models.RiskLow: 0}
	for _, bucket := range raw {
		if _, known := counts[bucket.Risk]; known {
			counts[bucket.Risk] += bucket.Count
		} else {
			counts[models.RiskLow] += bucket.Count
		}
	}
	return []models.RiskBucket{
		{Risk: models.RiskHigh, Count: counts[models.RiskHigh]},
		{Risk: models.RiskMedium, Count: counts[models.RiskMedium]},
		{Risk: models.RiskLow, Count: counts[models.RiskLow]},
	}, nil
}

// StudentDetail aggregates one student's enrollments across classes.
func (s *AdminService) StudentDetail(ctx context.Context, email string) (*StudentSummary, error) {
	if email == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email is required")
	}
	rows, err := s.stats.StudentEnrollments(ctx, email)
	if err != nil {
		return nil, dbError(err)
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	atRisk := 0
	for i := range rows {
		rows[i].Course = fmt.Sprintf("%s %s", rows[i].SubjectCode, rows[i].SubjectName)
		if rows[i].Risk != nil && (*rows[i].Risk == models.RiskHigh || *rows[i].Risk == models.RiskMedium) {
			atRisk++
		}
	}
	return &StudentSummary{
		Email:       email,
		Enrollments: rows,
		ClassCount:  len(rows),
		AtRiskCount: atRisk,
	}, nil
}

// PendingAccounts lists self-registered accounts awaiting moderation.
func (s *AdminService) PendingAccounts(ctx context.Context) ([]models.AccountInfo, error) {
	accounts, err := s.accounts.ListPending(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	infos := make([]models.AccountInfo, 0, len(accounts))
	for i := range accounts {
		infos = append(infos, accounts[i].Info())
	}
	return infos, nil
}

// Approve activates a pending account and marks it verified.
func (s *AdminService) Approve(ctx context.Context, id string) (*DecisionResult, error) {
	return s.decide(ctx, id, true)
}

// Decline deactivates a pending account.
func (s *AdminService) Decline(ctx context.Context, id string) (*DecisionResult, error) {
	return s.decide(ctx, id, false)
}

func (s *AdminService) decide(ctx context.Context, id string, approved bool) (*DecisionResult, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "pending account not found")
		}
		return nil, dbError(err)
	}
	if account.Status != models.StatusPending {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "pending account not found")
	}

	status := models.StatusInactive
	if approved {
		status = models.StatusActive
	}
	if err := s.accounts.SetDecision(ctx, id, status, approved); err != nil {
		return nil, dbError(err)
	}
	account.Status = status
	if approved {
		account.EmailVerified = true
	}

	sent, sendErr := s.mailer.SendAccountDecision(account.Email, account.Name, approved)
	if !sent {
		s.logger.Warn("decision email not sent",
			zap.String("email", account.Email),
			zap.String("reason", sendErr))
	}

	// Approvals change the instructor population the overview reports.
	if err := s.cache.Invalidate(ctx, overviewCacheKeyPrefix+"*"); err != nil {
		s.logger.Warn("overview cache invalidation failed", zap.Error(err))
	}

	return &DecisionResult{Account: account.Info(), EmailSent: sent}, nil
}

// percent returns the at-risk share rounded to one decimal. Zero totals yield
// zero rather than dividing.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
