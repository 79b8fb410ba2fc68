package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account. Password always holds a bcrypt hash and is never
// serialized.
type User struct {
	gorm.Model
	Username  string     `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	FullName  string     `gorm:"size:255" json:"full_name"`
	Gender    string     `gorm:"size:10" json:"gender"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Phone     string     `gorm:"size:30" json:"phone"`
	Address   string     `gorm:"size:512" json:"address"`
	Role      string     `gorm:"size:20;not null;default:user" json:"role"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
