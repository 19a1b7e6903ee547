package sqlsink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"togglv9/internal/codec"
	"togglv9/internal/database"
	"togglv9/internal/domain"
	"togglv9/internal/optional"
	"togglv9/internal/ports"
)

var _ ports.Sink = (*Client)(nil)

var (
	timeEntryColumns = []string{"id", "workspace_id", "user_id", "project_id", "task_id", "description",
		"billable", "tags", "start", "stop", "duration_sec", "at", "deleted_at"}
	projectColumns = []string{"id", "workspace_id", "name", "active", "is_private", "color", "client_id", "at"}
	clientColumns  = []string{"id", "workspace_id", "name", "archived", "at", "deleted_at"}
	tagColumns     = []string{"id", "workspace_id", "name", "at", "deleted_at"}
)

// Client implements ports.Sink by upserting into SQL tables created by
// internal/migrate. It works with any dialect in internal/database.
type Client struct {
	db      *sql.DB
	dialect database.Dialect
	log     *slog.Logger
}

// New wraps an open database. The Client takes ownership of db.
func New(db *sql.DB, d database.Dialect, log *slog.Logger) *Client {
	return &Client{db: db, dialect: d, log: log}
}

// SyncEntries upserts entries keyed on their Toggl ID.
func (c *Client) SyncEntries(ctx context.Context, entries []domain.TimeEntry) error {
	err := c.upsert(ctx, "toggl_time_entries", timeEntryColumns, len(entries), func(i int) ([]any, error) {
		e := entries[i]
		var tags any
		if t, ok := e.Tags.Get(); ok {
			// Stored as JSON text.
			b, err := json.Marshal(t)
			if err != nil {
				return nil, fmt.Errorf("encode tags of entry %d: %w", e.ID, err)
			}
			tags = string(b)
		}
		return []any{
			e.ID,
			e.WorkspaceID,
			e.UserID,
			nullable(e.ProjectID),
			nullable(e.TaskID),
			nullable(e.Description),
			e.Billable,
			tags,
			e.Start.UTC(),
			nullableTime(e.Stop),
			codec.EncodeDuration(e.Duration.Duration(), codec.UnitSeconds),
			e.At.UTC(),
			nullableTime(e.ServerDeletedAt),
		}, nil
	})
	if err != nil {
		return err
	}
	c.log.Info("sql sink upserted entries", slog.Int("count", len(entries)), slog.String("dialect", c.dialect.Name))
	return nil
}

// SyncProjects upserts projects keyed on their Toggl ID.
func (c *Client) SyncProjects(ctx context.Context, projects []domain.Project) error {
	err := c.upsert(ctx, "toggl_projects", projectColumns, len(projects), func(i int) ([]any, error) {
		p := projects[i]
		return []any{p.ID, p.WorkspaceID, p.Name, p.Active, p.Private, p.Color, nullable(p.ClientID), p.At.UTC()}, nil
	})
	if err != nil {
		return err
	}
	c.log.Info("sql sink upserted projects", slog.Int("count", len(projects)), slog.String("dialect", c.dialect.Name))
	return nil
}

func (c *Client) SyncClients(ctx context.Context, clients []domain.Client) error {
	err := c.upsert(ctx, "toggl_clients", clientColumns, len(clients), func(i int) ([]any, error) {
		cl := clients[i]
		return []any{cl.ID, cl.WorkspaceID, cl.Name, cl.Archived, cl.At.UTC(), nullableTime(cl.ServerDeletedAt)}, nil
	})
	if err != nil {
		return err
	}
	c.log.Info("sql sink upserted clients", slog.Int("count", len(clients)), slog.String("dialect", c.dialect.Name))
	return nil
}

func (c *Client) SyncTags(ctx context.Context, tags []domain.Tag) error {
	err := c.upsert(ctx, "toggl_tags", tagColumns, len(tags), func(i int) ([]any, error) {
		t := tags[i]
		return []any{t.ID, t.WorkspaceID, t.Name, t.At.UTC(), nullableTime(t.DeletedAt)}, nil
	})
	if err != nil {
		return err
	}
	c.log.Info("sql sink upserted tags", slog.Int("count", len(tags)), slog.String("dialect", c.dialect.Name))
	return nil
}

// upsert writes n rows in one transaction.
func (c *Client) upsert(ctx context.Context, table string, cols []string, n int, row func(i int) ([]any, error)) error {
	if n == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, c.dialect.Upsert(table, cols))
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		args, err := row(i)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying DB. The app releases it through io.Closer.
func (c *Client) Close() error { return c.db.Close() }

func nullable[T any](v optional.Value[T]) any {
	if x, ok := v.Get(); ok {
		return x
	}
	return nil
}

func nullableTime(v optional.Value[codec.Timestamp]) any {
	if ts, ok := v.Get(); ok {
		return ts.UTC()
	}
	return nil
}
