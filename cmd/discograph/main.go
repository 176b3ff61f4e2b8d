package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"discograph/internal/logging"
	"discograph/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logging.SetGlobal(logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}))

	db, err := openDatabase(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer db.Close()

	dataStore := store.New(db)

	if err := bootstrapDemoData(context.Background(), db, dataStore); err != nil {
		log.Fatal().Err(err).Msg("bootstrap demo data")
	}

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: newHTTPHandler(cfg, dataStore),
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server exited")
}
