package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"puisje/game"
	"puisje/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// HistoryService stores completed-game records in Postgres and serves the
// leaderboard and stats reads. It implements game.HistoryStore.
type HistoryService struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewHistoryService(db *gorm.DB, logger zerolog.Logger) *HistoryService {
	return &HistoryService{db: db, logger: logger}
}

func (s *HistoryService) Append(ctx context.Context, record game.CompletedGame) error {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return fmt.Errorf("failed to marshal players: %w", err)
	}

	row := models.GameRecord{
		Winner:      record.Winner,
		WinnerScore: record.WinnerScore,
		PlayerCount: len(record.Players),
		DurationMs:  record.Duration.Milliseconds(),
		Eligible:    record.Eligible,
		Players:     players,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to append game record: %w", err)
	}

	s.logger.Info().Str("winner", record.Winner).Int("winner_score", record.WinnerScore).
		Bool("eligible", record.Eligible).Msg("recorded completed game")
	return nil
}

// TopScores returns the best eligible winning scores ascending, earlier
// date first on ties. n <= 0 returns the whole board, which is what the
// evaluator ranks a fresh result against.
func (s *HistoryService) TopScores(ctx context.Context, n int) ([]game.ScoreEntry, error) {
	query := s.db.WithContext(ctx).
		Where("eligible = ?", true).
		Order("winner_score ASC, created_at ASC")
	if n > 0 {
		query = query.Limit(n)
	}

	var rows []models.GameRecord
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch top scores: %w", err)
	}

	entries := make([]game.ScoreEntry, len(rows))
	for i, row := range rows {
		entries[i] = game.ScoreEntry{
			Score:      row.WinnerScore,
			PlayerName: row.Winner,
			Date:       row.CreatedAt.Format(time.RFC3339),
		}
	}
	return entries, nil
}

func (s *HistoryService) Aggregates(ctx context.Context) (game.Aggregates, error) {
	var totalGames int64
	if err := s.db.WithContext(ctx).Model(&models.GameRecord{}).Count(&totalGames).Error; err != nil {
		return game.Aggregates{}, fmt.Errorf("failed to count games: %w", err)
	}

	var totalPlayers int64
	err := s.db.WithContext(ctx).Model(&models.GameRecord{}).
		Select("COALESCE(SUM(player_count), 0)").Scan(&totalPlayers).Error
	if err != nil {
		return game.Aggregates{}, fmt.Errorf("failed to sum players: %w", err)
	}

	return game.Aggregates{
		TotalGames:   int(totalGames),
		TotalPlayers: int(totalPlayers),
	}, nil
}

// TopWinners tallies eligible wins per pseudonym, most wins first.
func (s *HistoryService) TopWinners(ctx context.Context, n int) ([]game.WinnerTally, error) {
	var winners []string
	err := s.db.WithContext(ctx).Model(&models.GameRecord{}).
		Where("eligible = ?", true).
		Pluck("winner", &winners).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch winners: %w", err)
	}
	return tallyWinners(winners, n), nil
}

// tallyWinners counts wins per pseudonym, most wins first, name ascending
// on equal counts. n <= 0 returns the full tally.
func tallyWinners(winners []string, n int) []game.WinnerTally {
	counts := make(map[string]int, len(winners))
	for _, name := range winners {
		counts[name]++
	}

	tallies := make([]game.WinnerTally, 0, len(counts))
	for name, wins := range counts {
		tallies = append(tallies, game.WinnerTally{Name: name, Wins: wins})
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Wins != tallies[j].Wins {
			return tallies[i].Wins > tallies[j].Wins
		}
		return tallies[i].Name < tallies[j].Name
	})

	if n > 0 && n < len(tallies) {
		tallies = tallies[:n]
	}
	return tallies
}

// AverageScoresByRound computes the mean settled score per round across
// all recorded games. The per-round breakdown lives inside the players
// JSON snapshot, so the aggregation happens here rather than in SQL.
func (s *HistoryService) AverageScoresByRound(ctx context.Context) ([]game.RoundAverage, error) {
	var rows []models.GameRecord
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch game records: %w", err)
	}

	rosters := make([][]game.Player, 0, len(rows))
	for _, row := range rows {
		var players []game.Player
		if err := json.Unmarshal(row.Players, &players); err != nil {
			s.logger.Warn().Err(err).Uint("record", row.ID).Msg("skipping record with unreadable players snapshot")
			continue
		}
		rosters = append(rosters, players)
	}
	return roundAverages(rosters), nil
}

// roundAverages folds the per-round score entries of every recorded
// roster into one mean per round, rounds ascending. The mission label is
// taken from the first entry seen for a round.
func roundAverages(rosters [][]game.Player) []game.RoundAverage {
	type acc struct {
		mission string
		sum     int
		count   int
	}
	byRound := make(map[int]*acc)

	for _, roster := range rosters {
		for _, p := range roster {
			for _, rs := range p.RoundScores {
				a, ok := byRound[rs.Round]
				if !ok {
					a = &acc{mission: rs.Mission}
					byRound[rs.Round] = a
				}
				a.sum += rs.Score
				a.count++
			}
		}
	}

	rounds := make([]int, 0, len(byRound))
	for round := range byRound {
		rounds = append(rounds, round)
	}
	sort.Ints(rounds)

	averages := make([]game.RoundAverage, 0, len(rounds))
	for _, round := range rounds {
		a := byRound[round]
		averages = append(averages, game.RoundAverage{
			Round:        round,
			Mission:      a.mission,
			AverageScore: int(math.Round(float64(a.sum) / float64(a.count))),
		})
	}
	return averages
}
