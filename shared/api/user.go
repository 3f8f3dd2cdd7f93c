package api

import "github.com/nitespot-dev/nitespot/shared/domain"

// Request DTOs

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required"`
	Phone    string `json:"phone"`
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type VenueAssignmentRequest struct {
	VenueId string `json:"venue_id" validate:"required"`
}

// Response DTOs

type ProfileResponse struct {
	domain.User
}

type UserListResponse struct {
	Users []domain.User `json:"users"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

type BookmarkListResponse struct {
	Events []domain.Event `json:"events"`
}
