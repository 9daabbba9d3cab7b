package models

import "gorm.io/gorm"

// Role is the authorization role carried in a user's access token.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a platform member. Admins run distributions and review deposits.
type User struct {
	Base
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Role        Role           `gorm:"not null;default:'user'" json:"role"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Wallets     []Wallet       `gorm:"foreignKey:UserID" json:"wallets,omitempty"`
	Investments []Investment   `gorm:"foreignKey:UserID" json:"investments,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
