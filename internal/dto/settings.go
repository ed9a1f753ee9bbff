package dto

import "time"

// ToggleSettingsRequest opens or closes the submission gate.
type ToggleSettingsRequest struct {
	Open *bool `json:"open" validate:"required"`
}

// SettingsResponse is the public view of the submission gate.
type SettingsResponse struct {
	ApplicationsOpen bool       `json:"applications_open"`
	UpdatedBy        *string    `json:"updated_by,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}
