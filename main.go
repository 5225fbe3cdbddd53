package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cumpas/cumpas-sync/internal/api"
	"github.com/cumpas/cumpas-sync/internal/auth"
	"github.com/cumpas/cumpas-sync/internal/config"
	"github.com/cumpas/cumpas-sync/internal/database"
	"github.com/cumpas/cumpas-sync/internal/logger"
	"github.com/cumpas/cumpas-sync/internal/middleware"
	"github.com/cumpas/cumpas-sync/internal/monitoring"
	"github.com/cumpas/cumpas-sync/internal/services"
	"github.com/cumpas/cumpas-sync/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, !cfg.IsProduction())
	if cfg.UsingDevSecret {
		log.Warn().Msg("JWT_SECRET is not set, using the built-in development secret. Do not run like this in production.")
	}

	// Set up database
	db, err := database.New(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Token revocation: Redis when configured, in-process otherwise.
	var revoker auth.Revoker = auth.NewMemoryRevoker()
	if cfg.RedisAddr != "" {
		rdb, err := auth.NewRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		revoker = auth.NewRedisRevoker(rdb)
		log.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis token revocation store")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	eventService := services.NewEventService(db, hub)
	habitService := services.NewHabitService(db, eventService, cfg.Location)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	stopCleanup := make(chan struct{})
	authLimiter.StartCleanup(10*time.Minute, stopCleanup)

	// Set up and run the background stats updater
	statUpdater := monitoring.NewStatUpdater(db, time.Minute)
	go statUpdater.Run()

	// Set up and run the habit rollover, if enabled
	var scheduler *monitoring.Scheduler
	if cfg.HabitResetCron != "" {
		scheduler, err = monitoring.NewScheduler(habitService, cfg.HabitResetCron, cfg.Location)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure habit rollover")
		}
		scheduler.Run()
	}

	// Set up router
	router := api.NewRouter(api.Dependencies{
		Users:         userService,
		Events:        eventService,
		Habits:        habitService,
		Finance:       services.NewFinanceService(db),
		Study:         services.NewStudyService(db, eventService),
		Goals:         services.NewGoalService(db, eventService),
		Timetable:     services.NewTimetableService(db),
		Pomodoro:      services.NewPomodoroService(db, eventService),
		Notes:         services.NewQuickNoteService(db),
		Tokens:        tokens,
		Authenticator: auth.NewAuthenticator(tokens, userService, revoker),
		Revoker:       revoker,
		Hub:           hub,
		AuthLimiter:   authLimiter,
		CORSOrigins:   cfg.CORSOrigins,

		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("env", cfg.Env).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	statUpdater.Stop()
	if scheduler != nil {
		scheduler.Stop()
	}
	close(stopCleanup)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	hub.Stop()

	log.Info().Msg("Server exiting")
}
