package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGuardEligible(t *testing.T) {
	t.Parallel()

	guard := NewGuard(15 * time.Minute)

	tests := []struct {
		name     string
		duration time.Duration
		testMode bool
		want     bool
	}{
		{"rushed game", 3 * time.Minute, false, false},
		{"just under the floor", 15*time.Minute - time.Second, false, false},
		{"exactly the floor", 15 * time.Minute, false, true},
		{"normal game", 42 * time.Minute, false, true},
		{"test mode bypasses the floor", 30 * time.Second, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, guard.Eligible(tt.duration, tt.testMode))
		})
	}
}

func TestNewGuardDefault(t *testing.T) {
	t.Parallel()

	guard := NewGuard(0)
	assert.Equal(t, DefaultMinDuration, guard.MinDuration)

	// The threshold is configuration, not law.
	short := NewGuard(2 * time.Minute)
	assert.True(t, short.Eligible(3*time.Minute, false))
}
