package dto

import (
	"time"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

// SaveDraftRequest carries draft fields. Drafts accept partial content, so no
// field is required.
type SaveDraftRequest struct {
	EssayOne              string   `json:"essay_one"`
	EssayTwo              string   `json:"essay_two"`
	ProgrammingExperience string   `json:"programming_experience"`
	Languages             []string `json:"languages"`
	ResearchExperience    string   `json:"research_experience"`
	GradeLevel            string   `json:"grade_level"`
	ClubsActivities       string   `json:"clubs_activities"`
	FinalThoughts         string   `json:"final_thoughts"`
}

// SubmitApplicationRequest is the full submission payload. Every field is
// validated before the draft flips to submitted.
type SubmitApplicationRequest struct {
	EssayOne              string   `json:"essay_one" validate:"required"`
	EssayTwo              string   `json:"essay_two" validate:"required"`
	ProgrammingExperience string   `json:"programming_experience" validate:"required"`
	Languages             []string `json:"languages" validate:"required,min=1"`
	ResearchExperience    string   `json:"research_experience" validate:"required"`
	GradeLevel            string   `json:"grade_level" validate:"required"`
	NeedsFinancialAid     *bool    `json:"needs_financial_aid" validate:"required"`
	ClubsActivities       string   `json:"clubs_activities" validate:"required"`
	FinalThoughts         string   `json:"final_thoughts" validate:"required"`

	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	PreferredEmail string `json:"preferred_email" validate:"required,email"`
	Location       string `json:"location" validate:"required"`
}

// ApplicationResponse is the applicant-facing view of their own record.
type ApplicationResponse struct {
	ID                string                 `json:"id"`
	EssayOne          string                 `json:"essay_one"`
	EssayTwo          string                 `json:"essay_two"`
	Experience        *models.ExperienceData `json:"experience,omitempty"`
	NeedsFinancialAid bool                   `json:"needs_financial_aid"`
	IsDraft           bool                   `json:"is_draft"`
	SubmittedAt       *time.Time             `json:"submitted_at,omitempty"`
	LastUpdated       time.Time              `json:"last_updated"`
	ReviewStatus      models.ReviewStatus    `json:"review_status"`
}
