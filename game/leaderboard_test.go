package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankEmptyHistory(t *testing.T) {
	t.Parallel()

	outcome := Rank(-40, nil)
	assert.True(t, outcome.IsNewRecord)
	assert.Equal(t, 1, outcome.Position)
}

func TestRankNewRecord(t *testing.T) {
	t.Parallel()

	history := []ScoreEntry{
		{Score: -55, PlayerName: "Marc", Date: "2025-01-10"},
		{Score: -30, PlayerName: "Julie", Date: "2025-02-02"},
		{Score: 12, PlayerName: "Theo", Date: "2025-03-15"},
	}

	outcome := Rank(-60, history)
	assert.True(t, outcome.IsNewRecord)
	assert.Equal(t, 1, outcome.Position)

	outcome = Rank(-40, history)
	assert.False(t, outcome.IsNewRecord)
	assert.Equal(t, 2, outcome.Position)

	outcome = Rank(50, history)
	assert.False(t, outcome.IsNewRecord)
	assert.Equal(t, 4, outcome.Position)
}

// An exact tie with the current best is not a new record, and the earlier
// record stays ahead.
func TestRankTieIsNotARecord(t *testing.T) {
	t.Parallel()

	history := []ScoreEntry{
		{Score: -55, PlayerName: "Marc", Date: "2025-01-10"},
	}

	outcome := Rank(-55, history)
	assert.False(t, outcome.IsNewRecord)
	assert.Equal(t, 2, outcome.Position)
}

func TestTopScores(t *testing.T) {
	t.Parallel()

	// Chronological input, scrambled scores.
	history := []ScoreEntry{
		{Score: 12, PlayerName: "Theo", Date: "2025-01-05"},
		{Score: -55, PlayerName: "Marc", Date: "2025-01-10"},
		{Score: -30, PlayerName: "Julie", Date: "2025-02-02"},
		{Score: -55, PlayerName: "Anna", Date: "2025-03-01"},
		{Score: 3, PlayerName: "Leo", Date: "2025-03-20"},
	}

	top := TopScores(history, PodiumSize)
	assert.Len(t, top, 3)
	// Marc's earlier -55 ranks ahead of Anna's later identical score.
	assert.Equal(t, "Marc", top[0].PlayerName)
	assert.Equal(t, "Anna", top[1].PlayerName)
	assert.Equal(t, "Julie", top[2].PlayerName)
}

func TestTopScoresShortHistory(t *testing.T) {
	t.Parallel()

	history := []ScoreEntry{{Score: -10, PlayerName: "Marc", Date: "2025-01-10"}}
	top := TopScores(history, PodiumSize)
	assert.Len(t, top, 1)

	assert.Empty(t, TopScores(nil, PodiumSize))
}

func TestTopScoresDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	history := []ScoreEntry{
		{Score: 12, PlayerName: "Theo", Date: "2025-01-05"},
		{Score: -55, PlayerName: "Marc", Date: "2025-01-10"},
	}
	TopScores(history, 2)
	assert.Equal(t, "Theo", history[0].PlayerName)
}
