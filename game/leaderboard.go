package game

import "sort"

// PodiumSize is how many best scores the stats view shows.
const PodiumSize = 3

// ScoreEntry is one completed game's winning line as the history store
// returns it, in chronological order.
type ScoreEntry struct {
	Score      int    `json:"score"`
	PlayerName string `json:"player_name"`
	Date       string `json:"date"`
}

// Outcome classifies a just-finished game against the historical record.
// Position is the 1-based rank the winning score takes on the all-time
// board; IsNewRecord is true only for a strictly better score than the
// current best.
type Outcome struct {
	IsNewRecord bool `json:"is_new_record"`
	Position    int  `json:"position"`
}

// Rank places a candidate winning score against history. Lower scores are
// strictly better; ties keep the earlier-dated record ahead, so an exact
// tie with the current best is not a new record and ranks behind it.
func Rank(candidateScore int, history []ScoreEntry) Outcome {
	sorted := sortAscending(history)

	position := 1
	for _, e := range sorted {
		if e.Score <= candidateScore {
			position++
		}
	}

	return Outcome{
		IsNewRecord: len(sorted) == 0 || candidateScore < sorted[0].Score,
		Position:    position,
	}
}

// TopScores returns the best n historical entries, ascending. It is a
// stable prefix of the full sort, so podium order is deterministic across
// calls.
func TopScores(history []ScoreEntry, n int) []ScoreEntry {
	sorted := sortAscending(history)
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// sortAscending sorts by score without disturbing the chronological order
// of equal scores. History arrives date-ordered, so the stable sort keeps
// earlier records ahead on ties.
func sortAscending(history []ScoreEntry) []ScoreEntry {
	sorted := make([]ScoreEntry, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})
	return sorted
}
