package types

// UpdateProfileRequest represents a request to update a user's profile.
// Only present fields are applied.
type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitnil,min=1,max=100"`
	Bio            *string `json:"bio,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}
