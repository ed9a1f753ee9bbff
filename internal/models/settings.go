package models

import "time"

// SettingsRowID is the fixed primary key of the singleton settings row.
const SettingsRowID = 1

// ApplicationSettings is the singleton row gating new submissions.
type ApplicationSettings struct {
	ID               int       `db:"id" json:"id"`
	ApplicationsOpen bool      `db:"applications_open" json:"applications_open"`
	UpdatedByEmail   *string   `db:"updated_by_email" json:"updated_by_email,omitempty"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
