package game

import (
	"context"
	"time"
)

// CompletedGame is the immutable record of a finished session, appended
// to the history store. Ineligible games carry Eligible=false and are
// kept for aggregate counts only.
type CompletedGame struct {
	Players     []Player      `json:"players"`
	Winner      string        `json:"winner"`
	WinnerScore int           `json:"winner_score"`
	Duration    time.Duration `json:"duration"`
	Eligible    bool          `json:"eligible"`
}

// Aggregates are the headline counters for the stats view.
type Aggregates struct {
	TotalGames   int `json:"total_games"`
	TotalPlayers int `json:"total_players"`
}

// WinnerTally counts games won per pseudonym.
type WinnerTally struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// RoundAverage is the mean settled score for one round across all games.
type RoundAverage struct {
	Round        int    `json:"round"`
	Mission      string `json:"mission"`
	AverageScore int    `json:"average_score"`
}

// PersistenceGateway stores the in-progress session snapshot so a crash
// or reload can resume. The last-roster-names slot survives Clear, so a
// fresh game can prefill the previous roster.
type PersistenceGateway interface {
	SaveSnapshot(ctx context.Context, code string, snap Snapshot) error
	LoadSnapshot(ctx context.Context, code string) (Snapshot, bool, error)
	ClearSnapshot(ctx context.Context, code string) error
	SaveLastNames(ctx context.Context, names []string) error
	LastNames(ctx context.Context) ([]string, error)
}

// HistoryStore holds completed-game records. Appends are the only writes;
// records are never edited.
type HistoryStore interface {
	Append(ctx context.Context, record CompletedGame) error
	TopScores(ctx context.Context, n int) ([]ScoreEntry, error)
	Aggregates(ctx context.Context) (Aggregates, error)
	TopWinners(ctx context.Context, n int) ([]WinnerTally, error)
	AverageScoresByRound(ctx context.Context) ([]RoundAverage, error)
}

// PlayerRegistry enforces global pseudonym uniqueness across every game
// ever played and tracks per-player career stats.
type PlayerRegistry interface {
	Taken(ctx context.Context, names []string) ([]string, error)
	Register(ctx context.Context, names []string) error
	UpdateStats(ctx context.Context, name string, won bool, finalScore int) error
}
