package models

// Overview carries the admin dashboard KPIs for one department or the whole
// institution.
type Overview struct {
	TotalStudents      int     `json:"total_students"`
	AtRiskStudents     int     `json:"at_risk_students"`
	InstructorsCount   int     `json:"instructors_count"`
	ActiveAlerts       int     `json:"active_alerts"`
	InterventionsCount int     `json:"interventions_count"`
	AtRiskPercent      float64 `json:"at_risk_percent"`
}

// DepartmentStats groups enrollment counts by the owning instructor's
// department.
type DepartmentStats struct {
	Name        string  `db:"department" json:"name"`
	Total       int     `db:"total" json:"total"`
	AtRisk      int     `db:"at_risk" json:"atRisk"`
	Rate        float64 `json:"rate"`
	Instructors int     `db:"instructors" json:"instructors"`
}

// InstructorStats summarises one instructor's classes and enrollments.
type InstructorStats struct {
	ID         string `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	Email      string `db:"email" json:"email"`
	Department string `db:"department" json:"department"`
	Classes    int    `db:"classes" json:"classes"`
	Students   int    `db:"students" json:"students"`
	AtRisk     int    `db:"at_risk" json:"atRisk"`
}

// AtRiskRow is an at-risk enrollment joined with its class and instructor.
type AtRiskRow struct {
	StudentEmail   string `db:"student_email" json:"student_email"`
	Department     string `db:"department" json:"department"`
	SubjectCode    string `db:"subject_code" json:"-"`
	SubjectName    string `db:"subject_name" json:"-"`
	Course         string `db:"course" json:"course"`
	Risk           string `db:"risk" json:"risk"`
	InstructorName string `db:"instructor_name" json:"instructor"`
	ClassID        string `db:"class_id" json:"class_id"`
}

// RiskBucket holds an aggregate count for one risk label.
type RiskBucket struct {
	Risk  string `db:"risk" json:"name"`
	Count int    `db:"count" json:"value"`
}

// TrendPoint is a single snapshot for the trends chart; the store keeps no
// history, so only the current month is reported.
type TrendPoint struct {
	Name     string `json:"name"`
	AtRisk   int    `json:"atRisk"`
	Total    int    `json:"total"`
	Improved int    `json:"improved"`
}

// StudentEnrollmentRow summarises one enrollment for the admin student detail
// page.
type StudentEnrollmentRow struct {
	ClassID        string   `db:"class_id" json:"class_id"`
	SubjectCode    string   `db:"subject_code" json:"subject_code"`
	SubjectName    string   `db:"subject_name" json:"subject_name"`
	Course         string   `json:"course"`
	InstructorID   string   `db:"instructor_id" json:"instructor_id"`
	InstructorName string   `db:"instructor_name" json:"instructor_name"`
	Department     string   `db:"department" json:"department"`
	Risk           *string  `db:"risk" json:"risk"`
	GPA            *float64 `db:"gpa" json:"gpa"`
	Attendance     *float64 `db:"attendance" json:"attendance"`
	LMSActivity    *float64 `db:"lms_activity" json:"lms_activity"`
}
