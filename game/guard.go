package game

import "time"

// DefaultMinDuration is the minimum wall-clock length of a game before it
// counts for the leaderboard.
const DefaultMinDuration = 15 * time.Minute

// Guard decides whether a completed session is eligible for leaderboard
// ranking and player-stat updates. Ineligible games are still recorded
// for aggregate counts.
type Guard struct {
	MinDuration time.Duration
}

// NewGuard builds a guard; a non-positive threshold falls back to the
// default.
func NewGuard(minDuration time.Duration) Guard {
	if minDuration <= 0 {
		minDuration = DefaultMinDuration
	}
	return Guard{MinDuration: minDuration}
}

// Eligible reports whether a game of the given duration counts. Test mode
// bypasses the check entirely.
func (g Guard) Eligible(duration time.Duration, testMode bool) bool {
	return testMode || duration >= g.MinDuration
}
