package models

import "time"

// AdminEntry is a row in the flat admins membership table.
type AdminEntry struct {
	Email   string    `db:"email" json:"email"`
	AddedAt time.Time `db:"added_at" json:"added_at"`
}

// ReviewerEntry is a row in the flat reviewers membership table.
type ReviewerEntry struct {
	Email   string    `db:"email" json:"email"`
	AddedBy *string   `db:"added_by" json:"added_by,omitempty"`
	AddedAt time.Time `db:"added_at" json:"added_at"`
}

// Roster bundles both membership sets for the admin console.
type Roster struct {
	Admins    []AdminEntry    `json:"admins"`
	Reviewers []ReviewerEntry `json:"reviewers"`
}
