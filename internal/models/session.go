package models

import "time"

// Session is a server-side login session. The opaque token is the only value
// ever placed in the client cookie. A session is valid strictly before
// ExpiresAt; expiry is fixed at creation time and never extended.
type Session struct {
	Token     string    `gorm:"primaryKey;size:64" json:"-"`
	UserID    uint      `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Valid reports whether the session has not yet expired at the given instant.
func (s *Session) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
