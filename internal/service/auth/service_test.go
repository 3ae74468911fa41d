package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granjaops/granja/internal/config"
)

func TestLogin(t *testing.T) {
	svc := NewService(config.AuthConfig{Username: "admin", Password: "admin123"}, nil)

	user, ok := svc.Login("admin", "admin123")
	require.True(t, ok)
	assert.Equal(t, "admin", user.Username)
	assert.NotEmpty(t, user.ID)

	_, ok = svc.Login("admin", "errada")
	assert.False(t, ok)

	_, ok = svc.Login("intruso", "admin123")
	assert.False(t, ok)
}

func TestLogin_DelayAlwaysElapses(t *testing.T) {
	delay := 30 * time.Millisecond
	svc := NewService(config.AuthConfig{Username: "admin", Password: "admin123", LoginDelay: delay}, nil)

	start := time.Now()
	_, ok := svc.Login("admin", "errada")
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), delay)
}
