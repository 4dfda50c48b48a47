package entity

import (
	"time"
)

// Session is a logged-in user's bearer token. Sessions live in memory
// only; a restart logs everyone out.
type Session struct {
	Token     string
	UserPhone string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
