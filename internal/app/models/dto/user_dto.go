package dto

import "github.com/tutorlink/tutorlink/internal/app/models"

// UserResponse represents basic user information
type UserResponse struct {
	ID              int64   `json:"id"`
	Email           string  `json:"email"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	RoleType        string  `json:"roleType"`
	TutorID         *int64  `json:"tutorId,omitempty"`
	Members         []int64 `json:"members,omitempty"`
	ProfilePhotoURL *string `json:"profilePhotoUrl,omitempty"`
}

// NewUserResponse maps a user model to its response form
func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		RoleType:        string(u.RoleType),
		TutorID:         u.TutorID,
		Members:         u.Members,
		ProfilePhotoURL: u.ProfilePhotoURL,
	}
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	FirstName       string  `json:"firstName" binding:"required"`
	LastName        string  `json:"lastName" binding:"required"`
	ProfilePhotoURL *string `json:"profilePhotoUrl,omitempty"`
}

// CreateSpecialUserRequest pre-authorizes an email for a role at signup
type CreateSpecialUserRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	RoleType models.RoleType `json:"roleType" binding:"required"`
}
