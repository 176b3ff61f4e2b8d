package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	dbPingTimeout  = 5 * time.Second
	dbConnectWait  = 30 * time.Second
	dbRetryBackoff = 250 * time.Millisecond
	dbMaxBackoff   = 4 * time.Second
)

// openDatabase opens a pgx-backed handle and waits for the catalog
// database to accept connections. In a compose setup Postgres often
// comes up a moment after this binary, so failed pings are retried
// with growing pauses until dbConnectWait runs out.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := waitForPing(ctx, db, dbConnectWait); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type pinger interface {
	PingContext(ctx context.Context) error
}

func waitForPing(ctx context.Context, db pinger, wait time.Duration) error {
	deadline := time.Now().Add(wait)
	pause := dbRetryBackoff

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
		err := db.PingContext(pingCtx)
		cancel()

		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("ping database: %w", ctxErr)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("ping database: %w", err)
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", pause).
			Msg("database not ready")

		time.Sleep(pause)
		if pause < dbMaxBackoff {
			pause *= 2
		}
	}
}
