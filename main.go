package main

import (
	"os"

	"puisje/config"
	"puisje/game"
	"puisje/handlers"
	"puisje/middleware"
	"puisje/models"
	"puisje/routes"
	"puisje/services"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type CLI struct {
	Port  string `help:"Override the listen port." default:""`
	Debug bool   `help:"Enable debug logging."`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	logger := setupLogger(cli.Debug)

	// Load configuration
	cfg := config.Load()
	if cli.Port != "" {
		cfg.Port = cli.Port
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.GameRecord{},
		&models.RegisteredPlayer{},
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	clock := quartz.NewReal()
	snapshots := services.NewSnapshotStore(redisClient, cfg.SessionTTL, logger)
	history := services.NewHistoryService(db, logger)
	registry := services.NewRegistryService(db, logger)
	guard := game.NewGuard(cfg.MinGameDuration)

	sessionService := services.NewSessionService(
		snapshots, history, registry, guard, clock, logger,
		cfg.MaxRounds, cfg.TestMode,
	)

	authService, err := services.NewAuthService(cfg.AppPassword, cfg.JWTSecret, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize auth")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	statsHandler := handlers.NewStatsHandler(history, registry)

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.CORS())

	routes.SetupRoutes(router, authHandler, sessionHandler, statsHandler, cfg.JWTSecret, authService.Enabled())

	// Start server
	logger.Info().Str("port", cfg.Port).Int("max_rounds", cfg.MaxRounds).
		Bool("test_mode", cfg.TestMode).Msg("server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}

	kctx.Exit(0)
}

func setupLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
