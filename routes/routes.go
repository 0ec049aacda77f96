package routes

import (
	"net/http"

	"puisje/handlers"
	"puisje/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	sessionHandler *handlers.SessionHandler,
	statsHandler *handlers.StatsHandler,
	jwtSecret string,
	authEnabled bool,
) {
	api := router.Group("/api")
	{
		// Auth routes (public)
		api.POST("/auth/login", authHandler.Login)

		// Stats and registry reads (public)
		api.GET("/stats", statsHandler.GetStats)
		api.GET("/players/check", statsHandler.CheckPlayers)

		// Session routes, behind the password gate when configured
		sessions := api.Group("/sessions")
		sessions.Use(middleware.RequireAuth(jwtSecret, authEnabled))
		{
			sessions.POST("", sessionHandler.StartSession)
			sessions.GET("/last-players", sessionHandler.GetLastPlayers)
			sessions.GET("/:code", sessionHandler.GetSession)
			sessions.POST("/:code/round", sessionHandler.AnnounceRound)
			sessions.POST("/:code/settle", sessionHandler.SettleRound)
			sessions.POST("/:code/abandon", sessionHandler.AbandonSession)
			sessions.GET("/:code/scoreboard", sessionHandler.GetScoreboard)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
