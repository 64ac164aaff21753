package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent   UserRole = "Student"
	RoleModerator UserRole = "Moderator"
	RoleAdmin     UserRole = "Admin"
)

// IsValid reports whether the role is one of the known tiers. Anything else
// stored in the role column counts as insufficient privilege.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Name     string   `json:"name" gorm:"size:100"`
	PhotoURL *string  `json:"photoURL" gorm:"size:500"`
	Role     UserRole `json:"role" gorm:"not null;default:Student;size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
