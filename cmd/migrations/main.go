package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/slotpoll/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/slotpoll/internal/config"
	"github.com/vncsmyrnk/slotpoll/internal/logger"
)

// Usage: migrations [name]. Without a name every up migration runs.
func main() {
	log, _, err := logger.New(logger.Config{Prefix: "migrations"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("no database configured; set SLOTPOLL_DATABASE_URL or POSTGRES_*")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect", "err", err)
	}
	defer db.Close()

	if len(os.Args) > 1 {
		err = postgres.ApplyMigration(ctx, db, os.Args[1])
	} else {
		err = postgres.ApplyMigrations(ctx, db)
	}
	if err != nil {
		log.Fatal("migration failed", "err", err)
	}

	log.Info("migration files executed successfully")
}
