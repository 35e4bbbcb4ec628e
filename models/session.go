package models

import "time"

// SessionStatusGood marks a session created by a successful login. The
// access guard accepts nothing else.
const SessionStatusGood = "good"

// Session is one browser session's server-side record, keyed by the opaque
// token carried in the session cookie. There is no logout; rows simply age
// out past ExpiresAt.
type Session struct {
	Token     string    `gorm:"primaryKey;size:64"`
	Status    string    `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index;not null"`
}

// Valid reports whether the session grants access at time now.
func (s Session) Valid(now time.Time) bool {
	return s.Status == SessionStatusGood && now.Before(s.ExpiresAt)
}
