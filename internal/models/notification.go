package models

import "time"

// Notification is a per-role message rendered in the dashboard popover.
type Notification struct {
	ID        string    `db:"id" json:"id"`
	Role      string    `db:"role" json:"role"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	Type      string    `db:"type" json:"type"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"time"`
}
