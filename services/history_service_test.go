package services

import (
	"testing"

	"puisje/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallyWinnersOrdering(t *testing.T) {
	t.Parallel()

	winners := []string{"Marc", "Julie", "Marc", "Anna", "Julie", "Marc"}

	tallies := tallyWinners(winners, 10)
	require.Len(t, tallies, 3)
	assert.Equal(t, game.WinnerTally{Name: "Marc", Wins: 3}, tallies[0])
	assert.Equal(t, game.WinnerTally{Name: "Julie", Wins: 2}, tallies[1])
	assert.Equal(t, game.WinnerTally{Name: "Anna", Wins: 1}, tallies[2])
}

// Equal win counts rank alphabetically, so the board is stable across
// calls regardless of map iteration order.
func TestTallyWinnersTieBreaksByName(t *testing.T) {
	t.Parallel()

	winners := []string{"Zoe", "Anna", "Marc", "Anna", "Zoe", "Marc"}

	tallies := tallyWinners(winners, 10)
	require.Len(t, tallies, 3)
	assert.Equal(t, "Anna", tallies[0].Name)
	assert.Equal(t, "Marc", tallies[1].Name)
	assert.Equal(t, "Zoe", tallies[2].Name)
}

func TestTallyWinnersLimit(t *testing.T) {
	t.Parallel()

	winners := []string{"Marc", "Marc", "Julie", "Anna"}

	tallies := tallyWinners(winners, 2)
	require.Len(t, tallies, 2)
	assert.Equal(t, "Marc", tallies[0].Name)
	assert.Equal(t, "Anna", tallies[1].Name)

	// A non-positive limit returns the whole tally.
	assert.Len(t, tallyWinners(winners, 0), 3)
	assert.Empty(t, tallyWinners(nil, 10))
}

func TestRoundAverages(t *testing.T) {
	t.Parallel()

	rosters := [][]game.Player{
		{
			{Name: "Alice", RoundScores: []game.RoundScore{
				{Round: 1, Score: -20, Mission: "Deux brelans"},
				{Round: 2, Score: 10, Mission: "Une suite + Un brelan"},
			}},
			{Name: "Bob", RoundScores: []game.RoundScore{
				{Round: 1, Score: 12, Mission: "Deux brelans"},
				{Round: 2, Score: -20, Mission: "Une suite + Un brelan"},
			}},
		},
		{
			{Name: "Cara", RoundScores: []game.RoundScore{
				{Round: 1, Score: 8, Mission: "Deux brelans"},
			}},
		},
	}

	averages := roundAverages(rosters)
	require.Len(t, averages, 2)

	// Round 1: (-20 + 12 + 8) / 3 = 0. Round 2: (10 - 20) / 2 = -5.
	assert.Equal(t, game.RoundAverage{Round: 1, Mission: "Deux brelans", AverageScore: 0}, averages[0])
	assert.Equal(t, game.RoundAverage{Round: 2, Mission: "Une suite + Un brelan", AverageScore: -5}, averages[1])
}

// Negative means round half away from zero, the same as positive ones.
func TestRoundAveragesRounding(t *testing.T) {
	t.Parallel()

	rosters := [][]game.Player{
		{
			{Name: "Alice", RoundScores: []game.RoundScore{{Round: 1, Score: -20, Mission: "m"}}},
			{Name: "Bob", RoundScores: []game.RoundScore{{Round: 1, Score: -25, Mission: "m"}}},
		},
	}

	averages := roundAverages(rosters)
	require.Len(t, averages, 1)
	assert.Equal(t, -23, averages[0].AverageScore)
}

func TestRoundAveragesEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, roundAverages(nil))
	assert.Empty(t, roundAverages([][]game.Player{{{Name: "Alice"}}}))
}
