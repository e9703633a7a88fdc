// Package bootstrap wires the storage backend, repositories and services
// shared by the server and the CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/slotpoll/internal/adapters/repository/document"
	"github.com/vncsmyrnk/slotpoll/internal/adapters/repository/filestore"
	"github.com/vncsmyrnk/slotpoll/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/slotpoll/internal/config"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
	"github.com/vncsmyrnk/slotpoll/internal/core/services"
	"github.com/vncsmyrnk/slotpoll/internal/core/session"
)

type App struct {
	PollRepo      *document.PollRepository
	OrganizerRepo *document.OrganizerRepository

	Polls      ports.PollService
	Votes      ports.VoteService
	Organizers ports.OrganizerService
	Auth       *services.AuthService
	Summary    ports.SummaryService

	db *sqlx.DB
}

// New opens the configured record store and builds every service on it.
func New(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, error) {
	app := &App{}

	var store ports.RecordStore
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		app.db = db
		store = postgres.NewRecordStore(db)
		logger.Info("using postgres record store")
	default:
		store = filestore.NewRecordStore(cfg.DataDir, logger)
		logger.Info("using file record store", "dir", cfg.DataDir)
	}

	return app.wire(store, cfg, logger)
}

// NewWithStore builds the services on an already constructed record store.
func NewWithStore(store ports.RecordStore, cfg config.Config, logger *log.Logger) (*App, error) {
	return (&App{}).wire(store, cfg, logger)
}

func (app *App) wire(store ports.RecordStore, cfg config.Config, logger *log.Logger) (*App, error) {
	if cfg.UsingDevSecret {
		logger.Warn("using the development session secret; set ORGANIZER_SESSION_SECRET in production")
	}
	codec, err := session.NewCodec([]byte(cfg.SessionSecret))
	if err != nil {
		app.Close()
		return nil, err
	}

	clock := services.SystemClock()
	locks := services.NewKeyedMutex()

	app.PollRepo = document.NewPollRepository(store, logger)
	app.OrganizerRepo = document.NewOrganizerRepository(store, logger)

	app.Polls = services.NewPollService(app.PollRepo, locks, clock)
	app.Votes = services.NewVoteService(app.PollRepo, locks, clock)
	app.Organizers = services.NewOrganizerService(app.OrganizerRepo, clock)
	app.Auth = services.NewAuthService(app.OrganizerRepo, codec, cfg.AdminPassword, clock, logger)
	app.Summary = services.NewSummaryService(app.PollRepo)
	return app, nil
}

// DB is the postgres handle, or nil for the file backend.
func (app *App) DB() *sqlx.DB {
	return app.db
}

func (app *App) Close() error {
	if app.db != nil {
		return app.db.Close()
	}
	return nil
}
