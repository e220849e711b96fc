package dto

type UpdateProfileRequest struct {
	Username     *string `json:"username" validate:"omitempty,min=5,max=30"`
	Email        *string `json:"email" validate:"omitempty,email,max=254"`
	ProfileImage *string `json:"profile_image" validate:"omitempty,url,max=2048"`
}

// RoleFilter narrows list endpoints by member role. Empty means every role.
type RoleFilter struct {
	Role string `query:"role" validate:"omitempty,oneof=admin member"`
}
