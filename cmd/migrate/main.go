package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"donorly/internal/infra"
	"donorly/internal/migrations"
)

func main() {
	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	logger := infra.NewLogger("cli", os.Getenv("LOG_LEVEL")).With().Str("cmd", "migrate").Logger()

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("open database: %w", err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		exitWithError(fmt.Errorf("ping database: %w", err))
	}

	applied, err := migrations.Apply(ctx, db)
	for _, version := range applied {
		logger.Info().Str("version", version).Msg("migration applied")
	}
	if err != nil {
		exitWithError(err)
	}
	if len(applied) == 0 {
		logger.Info().Msg("schema up to date")
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
