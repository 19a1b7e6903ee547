package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"togglv9/internal/adapter/sqlsink"
	tg "togglv9/internal/adapter/toggl"
	"togglv9/internal/config"
	"togglv9/internal/database"
	"togglv9/internal/migrate"
	"togglv9/internal/ports"
	"togglv9/internal/usecase"
)

// App wires adapters and use cases.
type App struct {
	log    *slog.Logger
	uc     *usecase.SyncUseCase
	toggl  ports.TogglClient
	closer io.Closer
}

// NewTogglClient builds an API client from the Toggl section of cfg.
func NewTogglClient(log *slog.Logger, cfg config.Config) (*tg.Client, error) {
	auth := tg.TokenAuth(cfg.Toggl.APIToken)
	if cfg.Toggl.APIToken == "" {
		auth = tg.Auth{User: cfg.Toggl.User, Password: cfg.Toggl.Password}
	}
	return tg.NewClient(auth,
		tg.WithBaseURL(cfg.Toggl.BaseURL),
		tg.WithTimeout(cfg.Toggl.Timeout),
		tg.WithLogger(log),
	)
}

func New(ctx context.Context, log *slog.Logger, cfg config.Config) (*App, error) {
	togglClient, err := NewTogglClient(log, cfg)
	if err != nil {
		return nil, err
	}

	db, dialect, err := database.Open(ctx, cfg.Sink.Driver, cfg.Sink.DSN)
	if err != nil {
		return nil, err
	}
	// Run migrations before opening the sink for use
	if err := migrate.Run(ctx, db, dialect, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	sink := sqlsink.New(db, dialect, log)

	uc := &usecase.SyncUseCase{
		Log:         log,
		Toggl:       togglClient,
		Sink:        sink,
		WorkspaceID: cfg.Toggl.WorkspaceID,
	}

	return &App{log: log, uc: uc, toggl: togglClient, closer: sink}, nil
}

func (a *App) RunOnce(ctx context.Context, from, to time.Time) (usecase.Report, error) {
	return a.uc.Run(ctx, from, to)
}

// Close releases the sink's database handle.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
