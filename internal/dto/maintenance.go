package dto

// WipeRequest gates the irreversible bulk wipe behind a literal confirmation.
type WipeRequest struct {
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

// WipeResult reports what the wipe deleted.
type WipeResult struct {
	ApplicationsDeleted int64 `json:"applications_deleted"`
	UsersDeleted        int64 `json:"users_deleted"`
}
