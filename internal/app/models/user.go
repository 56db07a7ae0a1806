package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID              int64      `json:"id" db:"id" example:"1"`
	Email           string     `json:"email" db:"email" example:"student@example.com"`
	Password        string     `json:"-" db:"password"`
	FirstName       string     `json:"firstName" db:"first_name" example:"Ayşe"`
	LastName        string     `json:"lastName" db:"last_name" example:"Demir"`
	RoleType        RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`
	IsActive        bool       `json:"isActive" db:"is_active" example:"true"`
	ProfilePhotoURL *string    `json:"profilePhotoUrl,omitempty" db:"profile_photo_url"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}
