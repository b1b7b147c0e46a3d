package models

import "time"

// Risk labels assigned externally to an enrollment. The system never computes
// them.
const (
	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"
)

// ValidRisk reports whether the label is one of the three known buckets.
func ValidRisk(risk string) bool {
	return risk == RiskHigh || risk == RiskMedium || risk == RiskLow
}

// Enrollment links a student email to a class, carrying optional academic
// indicators. The (class_id, student_email) pair is unique and enrollments are
// never deleted.
type Enrollment struct {
	ID                  string    `db:"id" json:"id"`
	ClassID             string    `db:"class_id" json:"class_id"`
	StudentEmail        string    `db:"student_email" json:"student_email"`
	GPA                 *float64  `db:"gpa" json:"gpa,omitempty"`
	Attendance          *float64  `db:"attendance" json:"attendance,omitempty"`
	LMSActivity         *float64  `db:"lms_activity" json:"lms_activity,omitempty"`
	Risk                *string   `db:"risk" json:"risk,omitempty"`
	FlaggedForMentoring *bool     `db:"flagged_for_mentoring" json:"flagged_for_mentoring,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// EnrollmentPatch lists the indicator fields that may change on an enrollment.
// Nil fields are left untouched.
type EnrollmentPatch struct {
	GPA                 *float64 `json:"gpa" validate:"omitempty,gte=0,lte=4"`
	Attendance          *float64 `json:"attendance" validate:"omitempty,gte=0,lte=100"`
	LMSActivity         *float64 `json:"lms_activity" validate:"omitempty,gte=0,lte=100"`
	Risk                *string  `json:"risk" validate:"omitempty,oneof=High Medium Low"`
	FlaggedForMentoring *bool    `json:"flagged_for_mentoring"`
}

// Empty reports whether the patch carries no recognised fields.
func (p EnrollmentPatch) Empty() bool {
	return p.GPA == nil && p.Attendance == nil && p.LMSActivity == nil && p.Risk == nil && p.FlaggedForMentoring == nil
}

// ClassRosterRow is an enrollment flattened with its class for instructor views.
type ClassRosterRow struct {
	StudentEmail        string   `db:"student_email" json:"student_email"`
	ClassID             string   `db:"class_id" json:"class_id"`
	SubjectCode         string   `db:"subject_code" json:"subject_code"`
	SubjectName         string   `db:"subject_name" json:"subject_name"`
	Risk                *string  `db:"risk" json:"risk,omitempty"`
	GPA                 *float64 `db:"gpa" json:"gpa,omitempty"`
	Attendance          *float64 `db:"attendance" json:"attendance,omitempty"`
	LMSActivity         *float64 `db:"lms_activity" json:"lms_activity,omitempty"`
	FlaggedForMentoring *bool    `db:"flagged_for_mentoring" json:"flagged_for_mentoring,omitempty"`
}

// ClassRiskSummary aggregates a single class by risk bucket.
type ClassRiskSummary struct {
	Total      int             `json:"total"`
	HighRisk   int             `json:"high_risk"`
	MediumRisk int             `json:"medium_risk"`
	LowRisk    int             `json:"low_risk"`
	AtRiskList []RiskListEntry `json:"at_risk_list"`
}

// RiskListEntry identifies a labelled student within a class.
type RiskListEntry struct {
	StudentEmail string  `db:"student_email" json:"student_email"`
	Risk         *string `db:"risk" json:"risk"`
}
