package models

import "time"

// Role is the resolved capability of an identity. Membership in the admins
// and reviewers tables decides it per request; nothing is cached.
type Role string

const (
	RoleNone     Role = "NONE"
	RoleReviewer Role = "REVIEWER"
	RoleAdmin    Role = "ADMIN"
)

// Privileged reports whether the role may touch the review surface.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleReviewer
}

// User represents an applicant stored in the users table. Rows are created on
// first successful OAuth login and the profile fields are refreshed on
// submission.
type User struct {
	ID             string    `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	Name           string    `db:"name" json:"name"`
	FirstName      *string   `db:"first_name" json:"first_name,omitempty"`
	LastName       *string   `db:"last_name" json:"last_name,omitempty"`
	PreferredEmail *string   `db:"preferred_email" json:"preferred_email,omitempty"`
	Location       *string   `db:"location" json:"location,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
