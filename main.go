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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"hospital-schemes-server/internal/config"
	"hospital-schemes-server/internal/logging"
	"hospital-schemes-server/internal/metrics"
	"hospital-schemes-server/internal/routes"
	"hospital-schemes-server/internal/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using process environment")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	if err := logging.Setup("hospital-schemes", cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("Error configuring logger")
	}
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var m *metrics.Metrics
	var opts []store.Option
	if cfg.MetricsEnabled {
		m = metrics.New()
		opts = append(opts, store.WithRecorder(m))
	}

	// Connect, create missing tables, seed
	st, err := store.Open(cfg.Database, opts...)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Error connecting to database")
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("Database schema ready")

	if cfg.SeedMode != config.SeedOff {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := st.SeedSchemes(ctx, store.DefaultSchemes(), store.SeedMode(cfg.SeedMode))
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("Error seeding schemes")
		}
	}

	router := routes.NewRouter(st, cfg, m)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-sigChan
	log.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	if err := st.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close database")
	}
	log.Info().Msg("Server stopped")
}
