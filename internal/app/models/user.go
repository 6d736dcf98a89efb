package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID              int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email           string     `json:"email" db:"email" example:"student@example.com"`                          // User's email address
	Password        string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	FirstName       string     `json:"firstName" db:"first_name" example:"John"`                                // User's first name
	LastName        string     `json:"lastName" db:"last_name" example:"Doe"`                                   // User's last name
	RoleType        RoleType   `json:"roleType" db:"role_type" example:"USER"`                                  // User's role, fixed at registration
	TutorID         *int64     `json:"tutorId,omitempty" db:"tutor_id"`                                         // Assigned tutor for students with an active matching (nullable)
	Members         []int64    `json:"members,omitempty" db:"members"`                                          // Student ids linked to this tutor
	IsActive        bool       `json:"isActive" db:"is_active" example:"true"`                                  // Whether the user account is active
	CreatedAt       time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                // Timestamp when the user was created
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`                // Timestamp when the user was last updated
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
	ProfilePhotoURL *string    `json:"profilePhotoUrl,omitempty" db:"profile_photo_url"`                        // URL of the user's profile photo (nullable)
}

// SpecialUser defines the pre-registration allow-list based on the 'special_users' table.
// A matching row overrides whatever role the client submits at signup. Rows are
// consumed logically at registration but never deleted.
type SpecialUser struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	RoleType  RoleType  `json:"roleType" db:"role_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
