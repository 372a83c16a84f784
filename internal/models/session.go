package models

import "time"

// Session is the server-side record behind a bearer token. A request is
// accepted only while now is before ExpiresAt; each accepted request slides
// LastActivity and ExpiresAt forward, capped at TokenExpiresAt.
type Session struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	LastActivity   time.Time `json:"lastActivity"`
	ExpiresAt      time.Time `json:"expiresAt"`
	TokenExpiresAt time.Time `json:"tokenExpiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Touch records activity at now and pushes the idle deadline out by idle.
func (s *Session) Touch(now time.Time, idle time.Duration) {
	s.LastActivity = now
	exp := now.Add(idle)
	if !s.TokenExpiresAt.IsZero() && exp.After(s.TokenExpiresAt) {
		exp = s.TokenExpiresAt
	}
	s.ExpiresAt = exp
}
