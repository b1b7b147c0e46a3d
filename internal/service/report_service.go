package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/aews-api/internal/models"
	appErrors "github.com/noah-isme/aews-api/pkg/errors"
	"github.com/noah-isme/aews-api/pkg/export"
)

// Fixed report identifiers. Department reports use the at-risk-<slug> form.
const (
	ReportAtRiskSummary         = "at-risk-summary"
	ReportDepartmentPerformance = "department-performance"
	ReportAIAccuracy            = "ai-accuracy"
	ReportInterventions         = "interventions"

	atRiskDeptPrefix = "at-risk-"
)

// ReportMeta describes one downloadable report.
type ReportMeta struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Downloadable bool   `json:"downloadable"`
}

// ReportFile is a rendered report ready to stream.
type ReportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

type reportStatsRepository interface {
	AtRiskRows(ctx context.Context, department string) ([]models.AtRiskRow, error)
	DepartmentBreakdown(ctx context.Context) ([]models.DepartmentStats, error)
	Departments(ctx context.Context) ([]string, error)
}

type reportInterventionRepository interface {
	List(ctx context.Context, status string) ([]models.Intervention, error)
}

// ReportService builds the export datasets and renders them as CSV or PDF.
type ReportService struct {
	stats         reportStatsRepository
	interventions reportInterventionRepository
	csv           *export.CSVExporter
	pdf           *export.PDFExporter
	logger        *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(stats reportStatsRepository, interventions reportInterventionRepository, csv *export.CSVExporter, pdf *export.PDFExporter, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{stats: stats, interventions: interventions, csv: csv, pdf: pdf, logger: logger}
}

// List returns the available reports: the fixed set plus one at-risk report
// per department.
func (s *ReportService) List(ctx context.Context) ([]ReportMeta, error) {
	reports := []ReportMeta{
		{ID: ReportAtRiskSummary, Name: "At-Risk Students Summary", Description: "All students currently labelled High or Medium risk", Downloadable: true},
		{ID: ReportDepartmentPerformance, Name: "Department Performance", Description: "Enrollment and at-risk totals per department", Downloadable: true},
		{ID: ReportAIAccuracy, Name: "AI Accuracy", Description: "Prediction accuracy history (no data retained)", Downloadable: false},
		{ID: ReportInterventions, Name: "Interventions", Description: "All recorded interventions", Downloadable: true},
	}

	departments, err := s.stats.Departments(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	for _, dept := range departments {
		reports = append(reports, ReportMeta{
			ID:           atRiskDeptPrefix + departmentSlug(dept),
			Name:         fmt.Sprintf("At-Risk Students: %s", dept),
			Description:  fmt.Sprintf("Students labelled High or Medium risk in %s", dept),
			Downloadable: true,
		})
	}
	return reports, nil
}

// Download renders a report. Format is "csv" (default) or "pdf".
func (s *ReportService) Download(ctx context.Context, id, format string) (*ReportFile, error) {
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown format")
	}

	var (
		dataset export.Dataset
		title   string
		err     error
	)
	switch id {
	case ReportAtRiskSummary:
		title = "At-Risk Students Summary"
		dataset, err = s.atRiskDataset(ctx, "")
	case ReportDepartmentPerformance:
		title = "Department Performance"
		dataset, err = s.departmentDataset(ctx)
	case ReportInterventions:
		title = "Interventions"
		dataset, err = s.interventionDataset(ctx)
	case ReportAIAccuracy:
		// No accuracy history is retained, nothing to download.
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
	default:
		if !strings.HasPrefix(id, atRiskDeptPrefix) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
		}
		dept, resolveErr := s.resolveDepartment(ctx, strings.TrimPrefix(id, atRiskDeptPrefix))
		if resolveErr != nil {
			return nil, resolveErr
		}
		title = fmt.Sprintf("At-Risk Students: %s", dept)
		dataset, err = s.atRiskDataset(ctx, dept)
	}
	if err != nil {
		return nil, err
	}

	if format == "pdf" {
		payload, renderErr := s.pdf.Render(dataset, title)
		if renderErr != nil {
			return nil, appErrors.Wrap(renderErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ReportFile{Filename: id + ".pdf", ContentType: "application/pdf", Payload: payload}, nil
	}

	payload, renderErr := s.csv.Render(dataset)
	if renderErr != nil {
		return nil, appErrors.Wrap(renderErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return &ReportFile{Filename: id + ".csv", ContentType: "text/csv", Payload: payload}, nil
}

// resolveDepartment maps a slug back to a department name: exact slug match
// first, then case-insensitive substring.
func (s *ReportService) resolveDepartment(ctx context.Context, slug string) (string, error) {
	departments, err := s.stats.Departments(ctx)
	if err != nil {
		return "", dbError(err)
	}
	for _, dept := range departments {
		if departmentSlug(dept) == slug {
			return dept, nil
		}
	}
	needle := strings.ToLower(slug)
	for _, dept := range departments {
		if strings.Contains(strings.ToLower(departmentSlug(dept)), needle) {
			return dept, nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrNotFound, "report not found")
}

func (s *ReportService) atRiskDataset(ctx context.Context, department string) (export.Dataset, error) {
	rows, err := s.stats.AtRiskRows(ctx, department)
	if err != nil {
		return export.Dataset{}, dbError(err)
	}
	dataset := export.Dataset{Headers: []string{"student_email", "risk", "department", "course", "instructor"}}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"student_email": row.StudentEmail,
			"risk":          row.Risk,
			"department":    row.Department,
			"course":        row.Course,
			"instructor":    row.InstructorName,
		})
	}
	return dataset, nil
}

func (s *ReportService) departmentDataset(ctx context.Context) (export.Dataset, error) {
	stats, err := s.stats.DepartmentBreakdown(ctx)
	if err != nil {
		return export.Dataset{}, dbError(err)
	}
	dataset := export.Dataset{Headers: []string{"department", "total_students", "at_risk", "instructor_count"}}
	for _, stat := range stats {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"department":       stat.Name,
			"total_students":   strconv.Itoa(stat.Total),
			"at_risk":          strconv.Itoa(stat.AtRisk),
			"instructor_count": strconv.Itoa(stat.Instructors),
		})
	}
	return dataset, nil
}

func (s *ReportService) interventionDataset(ctx context.Context) (export.Dataset, error) {
	interventions, err := s.interventions.List(ctx, "")
	if err != nil {
		return export.Dataset{}, dbError(err)
	}
	dataset := export.Dataset{Headers: []string{"student", "department", "course", "type", "status", "instructor", "due", "completed"}}
	for _, item := range interventions {
		row := map[string]string{
			"student":    item.Student,
			"department": item.Department,
			"course":     item.Course,
			"type":       item.Type,
			"status":     item.Status,
			"instructor": item.Instructor,
		}
		if item.Due != nil {
			row["due"] = *item.Due
		}
		if item.CompletedOn != nil {
			row["completed"] = *item.CompletedOn
		}
		dataset.Rows = append(dataset.Rows, row)
	}
	return dataset, nil
}

// departmentSlug drops commas and turns spaces into dashes. Case is kept so
// the report ids round-trip with the department names the dashboard shows.
func departmentSlug(name string) string {
	slug := strings.ReplaceAll(strings.TrimSpace(name), ",", "")
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
