package dto

// AssignApplicationsRequest assigns selected applications to one roster
// member.
type AssignApplicationsRequest struct {
	ApplicationIDs []string `json:"application_ids" validate:"required,min=1,dive,required"`
	AssignToEmail  string   `json:"assign_to_email" validate:"required,email"`
}

// AssignmentResult reports how many applications a run touched.
type AssignmentResult struct {
	Assigned int `json:"assigned"`
}

// UnassignResult reports how many applications were reverted.
type UnassignResult struct {
	Unassigned int `json:"unassigned"`
}
