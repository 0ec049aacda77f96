package handlers

import (
	"errors"
	"net/http"

	"puisje/game"
	"puisje/services"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func (h *SessionHandler) StartSession(c *gin.Context) {
	var req services.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.sessionService.StartSession(c.Request.Context(), req.Names)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	view, err := h.sessionService.GetSession(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) AnnounceRound(c *gin.Context) {
	view, err := h.sessionService.AnnounceRound(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) SettleRound(c *gin.Context) {
	var req services.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, result, err := h.sessionService.SettleRound(c.Request.Context(), c.Param("code"), req.WinnerID, req.Losses)
	if err != nil {
		c.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}

	response := gin.H{"session": view}
	if result != nil {
		response["result"] = result
	}
	c.JSON(http.StatusOK, response)
}

func (h *SessionHandler) GetScoreboard(c *gin.Context) {
	view, err := h.sessionService.GetSession(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"round":     view.Round,
		"standings": view.Standings,
		"complete":  view.Phase == game.PhaseGameComplete,
	})
}

func (h *SessionHandler) AbandonSession(c *gin.Context) {
	if err := h.sessionService.Abandon(c.Request.Context(), c.Param("code")); err != nil {
		c.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session abandoned"})
}

// GetLastPlayers returns the previous game's roster names for prefill.
func (h *SessionHandler) GetLastPlayers(c *gin.Context) {
	names, err := h.sessionService.LastNames(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"names": names})
}

// sessionStatus maps service errors onto HTTP statuses: missing sessions
// are 404, an out-of-order transition is a 409 conflict, everything else
// is a plain validation failure.
func sessionStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrWrongPhase), errors.Is(err, game.ErrGameComplete):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
