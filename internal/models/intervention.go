package models

import "time"

// Intervention statuses.
const (
	InterventionPending    = "pending"
	InterventionInProgress = "in-progress"
	InterventionCompleted  = "completed"
)

// Intervention is a free-form support action recorded against a student.
type Intervention struct {
	ID          string    `db:"id" json:"id"`
	Student     string    `db:"student" json:"student"`
	Department  string    `db:"department" json:"department"`
	Course      string    `db:"course" json:"course"`
	Type        string    `db:"type" json:"type"`
	Status      string    `db:"status" json:"status"`
	Instructor  string    `db:"instructor" json:"instructor"`
	Due         *string   `db:"due" json:"due,omitempty"`
	CompletedOn *string   `db:"completed_on" json:"completed,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
