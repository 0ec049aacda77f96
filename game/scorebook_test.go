package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoster(t *testing.T) {
	t.Parallel()

	roster, err := NewRoster([]string{"Alice", "Bob", "Cara"})
	require.NoError(t, err)
	require.Len(t, roster, 3)

	for i, p := range roster {
		assert.Equal(t, i+1, p.ID)
		assert.Equal(t, 0, p.Score)
		assert.Empty(t, p.RoundScores)
	}
	assert.Equal(t, "Alice", roster[0].Name)
	assert.Equal(t, "Cara", roster[2].Name)
}

func TestNewRosterSizes(t *testing.T) {
	t.Parallel()

	names := []string{"P1", "P2", "P3", "P4", "P5", "P6"}
	for size := 3; size <= 5; size++ {
		roster, err := NewRoster(names[:size])
		require.NoError(t, err, "size %d should be valid", size)
		assert.Len(t, roster, size)
	}

	_, err := NewRoster(names[:2])
	assert.ErrorIs(t, err, ErrInvalidRoster)

	_, err = NewRoster(names[:6])
	assert.ErrorIs(t, err, ErrInvalidRoster)
}

func TestNewRosterRejectsBadNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		names []string
	}{
		{"empty name", []string{"Alice", "", "Cara"}},
		{"whitespace name", []string{"Alice", "   ", "Cara"}},
		{"too long", []string{"Alice", strings.Repeat("x", 21), "Cara"}},
		{"duplicate", []string{"Alice", "Bob", "Alice"}},
		{"duplicate ignoring case", []string{"Alice", "Bob", "ALICE"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoster(tt.names)
			assert.ErrorIs(t, err, ErrInvalidRoster)
		})
	}
}

func TestNewRosterTrimsAndKeepsLimit(t *testing.T) {
	t.Parallel()

	// Exactly 20 characters is still valid.
	long := strings.Repeat("y", 20)
	roster, err := NewRoster([]string{"  Alice  ", "Bob", long})
	require.NoError(t, err)
	assert.Equal(t, "Alice", roster[0].Name)
	assert.Equal(t, long, roster[2].Name)
}

func TestSettleRound(t *testing.T) {
	t.Parallel()

	roster, err := NewRoster([]string{"Alice", "Bob", "Cara"})
	require.NoError(t, err)

	updated, err := SettleRound(roster, 1, map[int]int{2: 12, 3: 8}, 1, "Deux brelans")
	require.NoError(t, err)

	assert.Equal(t, -20, updated[0].Score)
	assert.Equal(t, 12, updated[1].Score)
	assert.Equal(t, 8, updated[2].Score)

	require.Len(t, updated[0].RoundScores, 1)
	assert.Equal(t, RoundScore{Round: 1, Score: -20, Mission: "Deux brelans"}, updated[0].RoundScores[0])
	assert.Equal(t, RoundScore{Round: 1, Score: 12, Mission: "Deux brelans"}, updated[1].RoundScores[0])
}

func TestSettleRoundWinnerDeltaFixed(t *testing.T) {
	t.Parallel()

	roster, _ := NewRoster([]string{"Alice", "Bob", "Cara"})

	// Winner scores -20 regardless of how heavy the losses are.
	for _, losses := range []map[int]int{
		{2: 1, 3: 1},
		{2: 200, 3: 200},
		{2: 57, 3: 143},
	} {
		updated, err := SettleRound(roster, 1, losses, 1, "m")
		require.NoError(t, err)
		assert.Equal(t, WinnerDelta, updated[0].Score)
	}
}

func TestSettleRoundValidation(t *testing.T) {
	t.Parallel()

	roster, _ := NewRoster([]string{"Alice", "Bob", "Cara"})

	tests := []struct {
		name     string
		winnerID int
		losses   map[int]int
		wantErr  error
	}{
		{"unknown winner", 9, map[int]int{2: 5, 3: 5}, ErrUnknownPlayer},
		{"unknown loser id", 1, map[int]int{2: 5, 9: 5}, ErrUnknownPlayer},
		{"missing entry", 1, map[int]int{2: 5}, ErrMissingLossEntry},
		{"zero points", 1, map[int]int{2: 0, 3: 5}, ErrInvalidPoints},
		{"negative points", 1, map[int]int{2: -4, 3: 5}, ErrInvalidPoints},
		{"over cap", 1, map[int]int{2: 201, 3: 5}, ErrInvalidPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := SettleRound(roster, tt.winnerID, tt.losses, 1, "m")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, updated)
		})
	}
}

func TestSettleRoundBounds(t *testing.T) {
	t.Parallel()

	roster, _ := NewRoster([]string{"Alice", "Bob", "Cara"})

	// 1 and 200 are both inside the valid range.
	updated, err := SettleRound(roster, 1, map[int]int{2: 1, 3: 200}, 1, "m")
	require.NoError(t, err)
	assert.Equal(t, 1, updated[1].Score)
	assert.Equal(t, 200, updated[2].Score)
}

func TestSettleRoundDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	roster, _ := NewRoster([]string{"Alice", "Bob", "Cara"})
	settled, err := SettleRound(roster, 1, map[int]int{2: 12, 3: 8}, 1, "m")
	require.NoError(t, err)

	// The caller's roster is untouched on success...
	for _, p := range roster {
		assert.Equal(t, 0, p.Score)
		assert.Empty(t, p.RoundScores)
	}

	// ...and on rejection.
	_, err = SettleRound(settled, 1, map[int]int{2: 999, 3: 8}, 2, "m")
	require.Error(t, err)
	assert.Equal(t, -20, settled[0].Score)
	require.Len(t, settled[1].RoundScores, 1)

	// Appending to one round's history must not leak into a sibling copy.
	again, err := SettleRound(settled, 2, map[int]int{1: 10, 3: 10}, 2, "m")
	require.NoError(t, err)
	assert.Len(t, settled[0].RoundScores, 1)
	assert.Len(t, again[0].RoundScores, 2)
}

func TestScoreMatchesHistorySum(t *testing.T) {
	t.Parallel()

	roster, _ := NewRoster([]string{"Alice", "Bob", "Cara", "Dan"})

	losses := []map[int]int{
		{2: 12, 3: 8, 4: 30},
		{1: 10, 3: 22, 4: 5},
		{1: 3, 2: 45, 4: 18},
	}
	winners := []int{1, 2, 3}

	for i := range winners {
		var err error
		roster, err = SettleRound(roster, winners[i], losses[i], i+1, "m")
		require.NoError(t, err)

		for _, p := range roster {
			sum := 0
			for _, rs := range p.RoundScores {
				sum += rs.Score
			}
			assert.Equal(t, sum, p.Score, "player %s after round %d", p.Name, i+1)
		}
	}
}

func TestStandings(t *testing.T) {
	t.Parallel()

	roster, _ := NewRoster([]string{"Alice", "Bob", "Cara"})
	roster, err := SettleRound(roster, 2, map[int]int{1: 15, 3: 7}, 1, "m")
	require.NoError(t, err)

	sorted := Standings(roster)
	assert.Equal(t, "Bob", sorted[0].Name)
	assert.Equal(t, "Cara", sorted[1].Name)
	assert.Equal(t, "Alice", sorted[2].Name)

	// Input order is preserved.
	assert.Equal(t, "Alice", roster[0].Name)
}

func TestStandingsTieKeepsEntryOrder(t *testing.T) {
	t.Parallel()

	roster := []Player{
		{ID: 1, Name: "Alice", Score: 10},
		{ID: 2, Name: "Bob", Score: 10},
		{ID: 3, Name: "Cara", Score: -5},
	}
	sorted := Standings(roster)
	assert.Equal(t, []string{"Cara", "Alice", "Bob"}, []string{sorted[0].Name, sorted[1].Name, sorted[2].Name})
}
