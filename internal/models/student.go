package models

import "time"

// Student is the legacy flat directory record, separate from enrollments.
type Student struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Department string    `db:"department" json:"department"`
	Course     string    `db:"course" json:"course"`
	Risk       string    `db:"risk" json:"risk"`
	Instructor string    `db:"instructor" json:"instructor"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter captures filtering criteria for the directory listing.
type StudentFilter struct {
	Risk   string
	Search string
}
