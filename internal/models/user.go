package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // Hash
	Role      string    `gorm:"size:20;default:'user';not null" json:"role"`
	Profile   *Profile  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"profile"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsStaff reports whether the user shows up in the staff section of the
// member directory. Admins are staff too.
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}

// IsAdmin reports whether the user may see hidden questions.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AfterCreate attaches a blank profile to every new account, so a user
// row never exists without its companion profile.
func (u *User) AfterCreate(tx *gorm.DB) error {
	return tx.Create(&Profile{UserID: u.ID}).Error
}
