package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleMentor  UserRole = "mentor"
	RoleStudent UserRole = "student"
)

func (r UserRole) IsValid() bool {
	return r == RoleMentor || r == RoleStudent
}

// Label is the human readable role name used in flash messages.
func (r UserRole) Label() string {
	switch r {
	case RoleMentor:
		return "Mentor"
	case RoleStudent:
		return "Student"
	default:
		return string(r)
	}
}

type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;not null;size:150"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null;size:254"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	FirstName    string     `json:"first_name" gorm:"size:150"`
	LastName     string     `json:"last_name" gorm:"size:150"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Profile *UserProfile `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName is "first last" when either is set, otherwise the username.
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Username
}

type UserProfile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Role      UserRole  `json:"role" gorm:"not null;size:10"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
