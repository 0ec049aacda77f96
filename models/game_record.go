package models

import (
	"time"

	"gorm.io/gorm"
)

// GameRecord is one completed session. Records are append-only: the app
// writes them once at game end and never updates them. Ineligible games
// (finished implausibly fast outside test mode) are kept for the
// aggregate counters but excluded from the leaderboard.
type GameRecord struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Winner      string         `json:"winner" gorm:"not null"`
	WinnerScore int            `json:"winner_score" gorm:"not null"`
	PlayerCount int            `json:"player_count" gorm:"not null"`
	DurationMs  int64          `json:"duration_ms" gorm:"not null"`
	Eligible    bool           `json:"eligible" gorm:"not null;index"`
	Players     []byte         `json:"players" gorm:"type:jsonb"` // roster snapshot with per-round breakdown
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
