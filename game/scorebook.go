package game

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// Winning a round always scores -20, independent of the mission.
	WinnerDelta = -20

	// Loser penalty points are bounded by what a physical hand of cards
	// can add up to; anything outside the range is a data-entry mistake.
	MinLossPoints = 1
	MaxLossPoints = 200

	MinPlayers    = 3
	MaxPlayers    = 5
	MaxNameLength = 20
)

// RoundScore is one settled round in a player's history. The history is
// append-only; entries are never reordered or edited.
type RoundScore struct {
	Round   int    `json:"round"`
	Score   int    `json:"score"`
	Mission string `json:"mission"`
}

// Player is a roster entry. Score is the running total across settled
// rounds and always equals the sum of RoundScores deltas. Lower is better.
type Player struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Score       int          `json:"score"`
	RoundScores []RoundScore `json:"round_scores"`
}

// NewRoster validates player names and builds the initial roster.
// Requires 3 to 5 names, each non-empty, at most 20 characters, and
// pairwise distinct ignoring case. IDs are assigned 1..N in input order.
func NewRoster(names []string) ([]Player, error) {
	if len(names) < MinPlayers || len(names) > MaxPlayers {
		return nil, fmt.Errorf("%w: need %d to %d players, got %d", ErrInvalidRoster, MinPlayers, MaxPlayers, len(names))
	}

	seen := make(map[string]bool, len(names))
	roster := make([]Player, 0, len(names))
	for i, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: player %d has an empty name", ErrInvalidRoster, i+1)
		}
		if utf8.RuneCountInString(trimmed) > MaxNameLength {
			return nil, fmt.Errorf("%w: name %q exceeds %d characters", ErrInvalidRoster, trimmed, MaxNameLength)
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidRoster, trimmed)
		}
		seen[key] = true

		roster = append(roster, Player{
			ID:          i + 1,
			Name:        trimmed,
			Score:       0,
			RoundScores: []RoundScore{},
		})
	}

	return roster, nil
}

// SettleRound applies one round's result and returns a new roster. The
// winner scores WinnerDelta; every other player must have a loss entry in
// the 1..200 range. The input roster is never mutated, so a failed
// validation leaves the caller's state intact.
func SettleRound(roster []Player, winnerID int, losses map[int]int, round int, mission string) ([]Player, error) {
	if !hasPlayer(roster, winnerID) {
		return nil, fmt.Errorf("%w: winner id %d not in roster", ErrUnknownPlayer, winnerID)
	}
	for id := range losses {
		if !hasPlayer(roster, id) {
			return nil, fmt.Errorf("%w: loss entry for id %d not in roster", ErrUnknownPlayer, id)
		}
	}
	for _, p := range roster {
		if p.ID == winnerID {
			continue
		}
		points, ok := losses[p.ID]
		if !ok {
			return nil, fmt.Errorf("%w: no points entered for %s", ErrMissingLossEntry, p.Name)
		}
		if points < MinLossPoints || points > MaxLossPoints {
			return nil, fmt.Errorf("%w: %d for %s, must be between %d and %d",
				ErrInvalidPoints, points, p.Name, MinLossPoints, MaxLossPoints)
		}
	}

	updated := make([]Player, len(roster))
	for i, p := range roster {
		delta := WinnerDelta
		if p.ID != winnerID {
			delta = losses[p.ID]
		}

		history := make([]RoundScore, len(p.RoundScores), len(p.RoundScores)+1)
		copy(history, p.RoundScores)
		history = append(history, RoundScore{Round: round, Score: delta, Mission: mission})

		updated[i] = Player{
			ID:          p.ID,
			Name:        p.Name,
			Score:       p.Score + delta,
			RoundScores: history,
		}
	}

	return updated, nil
}

// Standings returns the roster sorted ascending by score, lowest first.
// Ties keep roster order, so the earlier-entered player ranks ahead.
func Standings(roster []Player) []Player {
	sorted := make([]Player, len(roster))
	copy(sorted, roster)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})
	return sorted
}

func hasPlayer(roster []Player, id int) bool {
	for _, p := range roster {
		if p.ID == id {
			return true
		}
	}
	return false
}
