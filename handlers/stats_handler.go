package handlers

import (
	"net/http"
	"strings"

	"puisje/game"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	history  game.HistoryStore
	registry game.PlayerRegistry
}

func NewStatsHandler(history game.HistoryStore, registry game.PlayerRegistry) *StatsHandler {
	return &StatsHandler{history: history, registry: registry}
}

const topWinnersShown = 10

// GetStats assembles the stats view: headline counters, the podium of
// all-time best winning scores, the win tally, and per-round averages.
func (h *StatsHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	aggregates, err := h.history.Aggregates(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	board, err := h.history.TopScores(ctx, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load best scores"})
		return
	}

	winners, err := h.history.TopWinners(ctx, topWinnersShown)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load winners"})
		return
	}

	averages, err := h.history.AverageScoresByRound(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load round averages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_games":             aggregates.TotalGames,
		"total_players":           aggregates.TotalPlayers,
		"best_scores":             game.TopScores(board, game.PodiumSize),
		"top_winners":             winners,
		"average_scores_by_round": averages,
	})
}

// CheckPlayers reports which of the requested pseudonyms are already
// taken in the global registry.
func (h *StatsHandler) CheckPlayers(c *gin.Context) {
	raw := c.Query("names")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "names query parameter required"})
		return
	}

	var names []string
	for _, name := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}

	taken, err := h.registry.Taken(c.Request.Context(), names)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check registry"})
		return
	}
	if taken == nil {
		taken = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"taken": taken})
}
