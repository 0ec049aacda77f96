package models

import (
	"time"

	"gorm.io/gorm"
)

// RegisteredPlayer is the global pseudonym registry entry. Names are
// unique across all games ever played, independent of the per-session
// uniqueness check. BestScore is nil until the player wins or finishes
// an eligible game; lower is better.
type RegisteredPlayer struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"uniqueIndex;not null"`
	GamesPlayed   int            `json:"games_played" gorm:"not null;default:0"`
	GamesWon      int            `json:"games_won" gorm:"not null;default:0"`
	BestScore     *int           `json:"best_score"`
	BestScoreDate *time.Time     `json:"best_score_date"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}
