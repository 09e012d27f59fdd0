package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id             uuid.UUID  `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Role           string     `json:"role"`
	Active         bool       `json:"active"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	Organization   string     `json:"organization,omitempty"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// MyProfileResponse is the self-service profile view with usage counts.
type MyProfileResponse struct {
	UserProfileResponse
	JoinedChatbots int64 `json:"joined_chatbots"`
	MessagesSent   int64 `json:"messages_sent"`
}

type UpdateProfileRequest struct {
	Name         string `json:"name" validate:"omitempty,min=2"`
	Email        string `json:"email" validate:"omitempty,email"`
	Bio          string `json:"bio" validate:"omitempty,max=1000"`
	Organization string `json:"organization" validate:"omitempty,max=200"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user speaker"`
}

// CreateUserResponse echoes the generated password once so the admin can
// hand it over. It is never retrievable again.
type CreateUserResponse struct {
	User     UserProfileResponse `json:"user"`
	Password string              `json:"password,omitempty"`
}

type UpdateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3"`
	Email    string `json:"email" validate:"omitempty,email"`
	Name     string `json:"name" validate:"omitempty,min=2"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user speaker"`
	Active   *bool  `json:"active"`
}

type ImportUserRow struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Valid    bool   `json:"valid"`
	Error    string `json:"error,omitempty"`
}

type ImportPreviewResponse struct {
	Rows         []ImportUserRow `json:"rows"`
	Total        int             `json:"total"`
	Valid        int             `json:"valid"`
	Duplicate    int             `json:"duplicate"`
	InvalidEmail int             `json:"invalid_email"`
	Skipped      int             `json:"skipped"`
}

type ImportUsersResponse struct {
	Created int                  `json:"created"`
	Skipped int                  `json:"skipped"`
	Errors  []string             `json:"errors,omitempty"`
	Users   []CreateUserResponse `json:"users"`
}
