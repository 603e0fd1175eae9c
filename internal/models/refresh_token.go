package models

import "time"

// RefreshToken is one link in a rotation chain. The opaque Token value is
// immutable after creation; RevokedAt is set at most once, and
// ReplacedByTokenID is only ever set together with RevokedAt when the token
// is rotated out. Rows are deleted by the retention sweeper only.
type RefreshToken struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Token             string     `gorm:"uniqueIndex;size:128;not null" json:"-"`
	UserID            uint       `gorm:"index;not null" json:"user_id"`
	User              User       `json:"-"`
	IPAddress         string     `gorm:"size:64" json:"ip_address,omitempty"`
	ExpiresAt         time.Time  `gorm:"index;not null" json:"expires_at"`
	RevokedAt         *time.Time `gorm:"index" json:"revoked_at,omitempty"`
	ReplacedByTokenID *uint      `gorm:"index" json:"replaced_by_token_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// Expired reports whether the token is past its absolute expiry. Expiry and
// revocation are orthogonal; both may be true at once.
func (t *RefreshToken) Expired(now time.Time) bool { return now.After(t.ExpiresAt) }

// Revoked reports whether the token has been revoked (rotated out or
// logged out; only the presence of ReplacedByTokenID distinguishes the two).
func (t *RefreshToken) Revoked() bool { return t.RevokedAt != nil }

func (RefreshToken) TableName() string { return "refresh_tokens" }
