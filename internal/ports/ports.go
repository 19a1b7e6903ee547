package ports

import (
	"context"

	"togglv9/internal/domain"
	"togglv9/internal/endpoint"
	"togglv9/internal/optional"
)

// TogglClient defines the Toggl reads the sync and the HTTP server rely on.
type TogglClient interface {
	TimeEntries(ctx context.Context, q endpoint.TimeEntriesQuery) ([]domain.TimeEntry, error)
	Projects(ctx context.Context, q endpoint.ProjectsQuery) ([]domain.Project, error)
	Clients(ctx context.Context, q endpoint.ClientsQuery) ([]domain.Client, error)
	Tags(ctx context.Context, q endpoint.TagsQuery) ([]domain.Tag, error)
	CurrentTimeEntry(ctx context.Context) (optional.Value[domain.TimeEntry], error)
}

// Sink receives Toggl records and persists them to a target system.
// Implementations upsert by Toggl ID, so repeated syncs are idempotent.
type Sink interface {
	SyncEntries(ctx context.Context, entries []domain.TimeEntry) error
	SyncProjects(ctx context.Context, projects []domain.Project) error
	SyncClients(ctx context.Context, clients []domain.Client) error
	SyncTags(ctx context.Context, tags []domain.Tag) error
}
