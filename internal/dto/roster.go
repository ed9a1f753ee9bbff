package dto

// AddReviewerRequest grants the reviewer role to an email.
type AddReviewerRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RemoveAdminResult reports the cascade outcome of revoking an admin.
type RemoveAdminResult struct {
	Email      string `json:"email"`
	Unassigned int    `json:"unassigned"`
}
