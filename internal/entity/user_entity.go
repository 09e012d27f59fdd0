// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleUser    UserRole = "user"
	UserRoleSpeaker UserRole = "speaker"
)

// ValidRole reports whether s is one of the accepted account roles.
func ValidRole(s string) bool {
	switch UserRole(s) {
	case UserRoleAdmin, UserRoleUser, UserRoleSpeaker:
		return true
	}
	return false
}

type User struct {
	Id             uuid.UUID
	Username       string
	Email          string
	PasswordHash   string
	Name           string
	Role           UserRole
	Active         bool
	ProfilePicture *string
	Bio            *string
	Organization   *string
	LastLogin      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type SessionToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *SessionToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
