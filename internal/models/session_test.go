package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionTouchSlidesExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := Session{TokenExpiresAt: now.Add(time.Hour)}

	s.Touch(now, 30*time.Minute)
	assert.Equal(t, now.Add(30*time.Minute), s.ExpiresAt)
	assert.False(t, s.Expired(now.Add(29*time.Minute)))
	assert.True(t, s.Expired(now.Add(30*time.Minute)))
}

func TestSessionTouchCappedByToken(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := Session{TokenExpiresAt: now.Add(10 * time.Minute)}

	s.Touch(now, 30*time.Minute)
	assert.Equal(t, s.TokenExpiresAt, s.ExpiresAt)
}

func TestRoleCanModerate(t *testing.T) {
	assert.True(t, RoleAdmin.CanModerate())
	assert.True(t, RoleModerator.CanModerate())
	assert.False(t, RoleUser.CanModerate())

	_, err := ParseRole("root")
	assert.Error(t, err)
}
