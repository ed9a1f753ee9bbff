package models

import "time"

// ReviewStatus tracks where an application sits in the review workflow.
type ReviewStatus string

const (
	ReviewStatusUnassigned ReviewStatus = "unassigned"
	ReviewStatusAssigned   ReviewStatus = "assigned"
	ReviewStatusInReview   ReviewStatus = "in_review"
	ReviewStatusCompleted  ReviewStatus = "completed"
)

// ValidTransitionTarget reports whether a status may be requested through the
// explicit update endpoint. "unassigned" is only reachable through the
// unassignment paths, never requested directly.
func ValidTransitionTarget(s ReviewStatus) bool {
	switch s {
	case ReviewStatusAssigned, ReviewStatusInReview, ReviewStatusCompleted:
		return true
	}
	return false
}

// Application is the single application row an applicant may hold. The
// experience payload stays an opaque serialized document; only the columns
// the workflow needs are normalized.
type Application struct {
	ID                string       `db:"id" json:"id"`
	UserID            string       `db:"user_id" json:"user_id"`
	EssayOne          string       `db:"essay_one" json:"essay_one"`
	EssayTwo          string       `db:"essay_two" json:"essay_two"`
	ExperienceData    []byte       `db:"experience_data" json:"experience_data"`
	NeedsFinancialAid bool         `db:"needs_financial_aid" json:"needs_financial_aid"`
	IsDraft           bool         `db:"is_draft" json:"is_draft"`
	SubmittedAt       *time.Time   `db:"submitted_at" json:"submitted_at,omitempty"`
	LastUpdated       time.Time    `db:"last_updated" json:"last_updated"`
	AssignedTo        *string      `db:"assigned_to" json:"assigned_to,omitempty"`
	ReviewStatus      ReviewStatus `db:"review_status" json:"review_status"`
	AssignedAt        *time.Time   `db:"assigned_at" json:"assigned_at,omitempty"`
	ReviewedAt        *time.Time   `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ReviewerGrade     *int         `db:"reviewer_grade" json:"reviewer_grade,omitempty"`
	ReviewerNotes     *string      `db:"reviewer_notes" json:"reviewer_notes,omitempty"`
}

// ExperienceData is the structured form of the opaque experience document.
// It is marshalled into applications.experience_data and never queried.
type ExperienceData struct {
	ProgrammingExperience string   `json:"programming_experience"`
	Languages             []string `json:"languages"`
	ResearchExperience    string   `json:"research_experience"`
	GradeLevel            string   `json:"grade_level"`
	ClubsActivities       string   `json:"clubs_activities"`
	FinalThoughts         string   `json:"final_thoughts"`
}

// SubmittedApplication joins an application with its applicant for exports
// and review listings.
type SubmittedApplication struct {
	Application
	ApplicantName  string `db:"applicant_name" json:"applicant_name"`
	ApplicantEmail string `db:"applicant_email" json:"applicant_email"`
}
