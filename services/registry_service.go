package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"puisje/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// RegistryService is the global pseudonym registry over Postgres: one row
// per name ever used, with career stats. Name matching is always
// case-insensitive. It implements game.PlayerRegistry.
type RegistryService struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewRegistryService(db *gorm.DB, logger zerolog.Logger) *RegistryService {
	return &RegistryService{db: db, logger: logger}
}

// Taken returns the subset of names already present in the registry.
func (s *RegistryService) Taken(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	lowered := make([]string, len(names))
	for i, name := range names {
		lowered[i] = strings.ToLower(name)
	}

	var existing []models.RegisteredPlayer
	if err := s.db.WithContext(ctx).Where("LOWER(name) IN ?", lowered).Find(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check registry: %w", err)
	}

	found := make(map[string]bool, len(existing))
	for _, p := range existing {
		found[strings.ToLower(p.Name)] = true
	}

	var taken []string
	for _, name := range names {
		if found[strings.ToLower(name)] {
			taken = append(taken, name)
		}
	}
	return taken, nil
}

// Register adds any names not yet in the registry, keeping the casing of
// first use. Already-registered names are left alone.
func (s *RegistryService) Register(ctx context.Context, names []string) error {
	taken, err := s.Taken(ctx, names)
	if err != nil {
		return err
	}
	existing := make(map[string]bool, len(taken))
	for _, name := range taken {
		existing[strings.ToLower(name)] = true
	}

	added := 0
	for _, name := range names {
		if existing[strings.ToLower(name)] {
			continue
		}
		player := models.RegisteredPlayer{Name: name}
		if err := s.db.WithContext(ctx).Create(&player).Error; err != nil {
			return fmt.Errorf("failed to register %s: %w", name, err)
		}
		existing[strings.ToLower(name)] = true
		added++
	}

	if added > 0 {
		s.logger.Info().Int("added", added).Msg("registered new players")
	}
	return nil
}

// UpdateStats bumps a player's career counters after an eligible game.
func (s *RegistryService) UpdateStats(ctx context.Context, name string, won bool, finalScore int) error {
	var player models.RegisteredPlayer
	err := s.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(name)).First(&player).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("player %s not in registry", name)
	}
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", name, err)
	}

	applyStats(&player, won, finalScore, time.Now())

	if err := s.db.WithContext(ctx).Save(&player).Error; err != nil {
		return fmt.Errorf("failed to update stats for %s: %w", name, err)
	}
	return nil
}

// applyStats folds one eligible game into a player's career counters.
// The best score only moves on a strictly better (lower) final score;
// the first recorded score always sets it, along with its date.
func applyStats(player *models.RegisteredPlayer, won bool, finalScore int, now time.Time) {
	player.GamesPlayed++
	if won {
		player.GamesWon++
	}
	if player.BestScore == nil || finalScore < *player.BestScore {
		player.BestScore = &finalScore
		player.BestScoreDate = &now
	}
}
