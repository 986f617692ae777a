package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	assert.True(t, rl.Allow("client"))
	assert.True(t, rl.Allow("client"))
	assert.True(t, rl.Allow("client"))
	assert.False(t, rl.Allow("client"))
}

func TestRateLimiterTracksKeysIndependently(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	assert.True(t, rl.Allow("first"))
	assert.False(t, rl.Allow("first"))
	assert.True(t, rl.Allow("second"))
}

func TestRateLimiterWindowExpires(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)

	assert.True(t, rl.Allow("client"))
	assert.False(t, rl.Allow("client"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("client"))
}

func TestRateLimiterGetRemaining(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	assert.Equal(t, 2, rl.GetRemaining("client"))
	rl.Allow("client")
	assert.Equal(t, 1, rl.GetRemaining("client"))
	rl.Allow("client")
	assert.Equal(t, 0, rl.GetRemaining("client"))
}

func TestRateLimiterReset(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	rl.Allow("client")
	assert.False(t, rl.Allow("client"))

	rl.Reset("client")
	assert.True(t, rl.Allow("client"))
}
