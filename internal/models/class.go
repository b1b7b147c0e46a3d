package models

import "time"

// Class is a subject taught by one instructor. Classes are immutable after
// creation; only their enrollments change.
type Class struct {
	ID           string    `db:"id" json:"id"`
	SubjectCode  string    `db:"subject_code" json:"subject_code"`
	SubjectName  string    `db:"subject_name" json:"subject_name"`
	InstructorID string    `db:"instructor_id" json:"instructor_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ClassSummary is a class with derived enrollment counts.
type ClassSummary struct {
	Class
	StudentCount int `db:"student_count" json:"student_count"`
	AtRiskCount  int `db:"at_risk_count" json:"at_risk_count"`
}
