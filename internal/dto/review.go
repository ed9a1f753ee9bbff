package dto

// UpdateReviewStatusRequest moves an application through the workflow.
type UpdateReviewStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SaveReviewRequest carries grade and notes. A null grade clears grading.
type SaveReviewRequest struct {
	Grade *int    `json:"grade"`
	Notes *string `json:"notes"`
}

// ReviewStatusResponse reports the applied transition.
type ReviewStatusResponse struct {
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
}
