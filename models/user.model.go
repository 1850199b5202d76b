package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of user roles. It is resolved once at login and
// carried in the JWT, never re-derived per handler.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTutor   Role = "TUTOR"
	RoleAdmin   Role = "ADMIN"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	ProfileImage        string     `json:"profile_image" gorm:"default:''"`
	Name                string     `json:"name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Mobile              string     `json:"mobile" gorm:"default:''"`
	Role                Role       `json:"role" gorm:"default:'STUDENT'"`
	Password            string     `json:"-" gorm:"not null"`
	IsEmailVerified     bool       `json:"is_email_verified" gorm:"default:false"`
	LastLogin           *time.Time `json:"last_login"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	IsBlocked           bool       `json:"-" gorm:"default:false"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}
