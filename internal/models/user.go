package models

import (
	"time"
)

// User is a provisioned account. Accounts are created by an administrator
// (or the bootstrap seed), never on the login path. Name and GoogleID stay
// nil until the first successful Google sign-in links the account.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;size:256;not null" json:"email"`
	Name        *string   `gorm:"size:256" json:"name"`
	GoogleID    *string   `gorm:"uniqueIndex;size:256" json:"-"`
	Active      bool      `gorm:"not null;default:false" json:"active"`
	Roles       []Role    `gorm:"many2many:user_roles" json:"roles,omitempty"`
	CreatedByID *uint     `json:"created_by_id,omitempty"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Linked reports whether a Google account has been associated with this user.
func (u *User) Linked() bool { return u.GoogleID != nil }

// RoleNames returns the names of the user's roles, for access-token claims.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

func (User) TableName() string { return "users" }
func (Role) TableName() string { return "roles" }
