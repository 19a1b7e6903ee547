package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"togglv9/internal/codec"
	"togglv9/internal/domain"
	"togglv9/internal/endpoint"
	"togglv9/internal/optional"
	"togglv9/internal/ports"
)

// ErrAlreadyRunning is returned when Run is called while another run is active.
var ErrAlreadyRunning = errors.New("sync already running")

// SyncUseCase coordinates fetching from Toggl and syncing to a Sink.
type SyncUseCase struct {
	Log   *slog.Logger
	Toggl ports.TogglClient
	Sink  ports.Sink
	// WorkspaceID limits the sync to one workspace when non-zero.
	WorkspaceID int64

	running atomic.Bool
}

// Report summarises one run.
type Report struct {
	RunID    string
	Entries  int
	Projects int
	Clients  int
	Tags     int
}

// Run copies time entries starting in [from, to) plus all projects, clients
// and tags into the sink.
func (uc *SyncUseCase) Run(ctx context.Context, from, to time.Time) (Report, error) {
	if uc.Toggl == nil || uc.Sink == nil {
		return Report{}, errors.New("usecase not initialized: missing dependencies")
	}
	if !to.After(from) {
		return Report{}, errors.New("sync window is empty: to must be after from")
	}
	if !uc.running.CompareAndSwap(false, true) {
		return Report{}, ErrAlreadyRunning
	}
	defer uc.running.Store(false)

	rep := Report{RunID: uuid.NewString()}
	log := uc.Log.With(slog.String("run_id", rep.RunID))
	log.Info("fetching time entries", slog.Time("from", from), slog.Time("to", to))

	// start_date/end_date are calendar days in the user's timezone, which may
	// sit on either side of UTC. Widen by a day at both ends, then trim.
	entries, err := uc.Toggl.TimeEntries(ctx, endpoint.TimeEntriesQuery{
		StartDate: optional.Of(codec.DateOf(from.UTC()).AddDays(-1)),
		EndDate:   optional.Of(codec.DateOf(to.UTC()).AddDays(1)),
	})
	if err != nil {
		return rep, err
	}
	entries = filter(entries, func(e domain.TimeEntry) bool {
		return uc.inWorkspace(e.WorkspaceID) && !e.Start.Before(from) && e.Start.Before(to)
	})
	log.Info("fetched time entries", slog.Int("count", len(entries)))

	projects, err := uc.Toggl.Projects(ctx, endpoint.ProjectsQuery{IncludeArchived: optional.Of(true)})
	if err != nil {
		return rep, err
	}
	projects = filter(projects, func(p domain.Project) bool { return uc.inWorkspace(p.WorkspaceID) })

	clients, err := uc.Toggl.Clients(ctx, endpoint.ClientsQuery{})
	if err != nil {
		return rep, err
	}
	clients = filter(clients, func(c domain.Client) bool { return uc.inWorkspace(c.WorkspaceID) })

	tags, err := uc.Toggl.Tags(ctx, endpoint.TagsQuery{})
	if err != nil {
		return rep, err
	}
	tags = filter(tags, func(t domain.Tag) bool { return uc.inWorkspace(t.WorkspaceID) })

	// Reference data first so entries never point at unknown projects.
	if err := uc.Sink.SyncClients(ctx, clients); err != nil {
		return rep, err
	}
	rep.Clients = len(clients)
	if err := uc.Sink.SyncProjects(ctx, projects); err != nil {
		return rep, err
	}
	rep.Projects = len(projects)
	if err := uc.Sink.SyncTags(ctx, tags); err != nil {
		return rep, err
	}
	rep.Tags = len(tags)

	if len(entries) == 0 {
		log.Info("no entries to sync")
		return rep, nil
	}
	if err := uc.Sink.SyncEntries(ctx, entries); err != nil {
		return rep, err
	}
	rep.Entries = len(entries)
	log.Info("sync completed",
		slog.Int("entries", rep.Entries),
		slog.Int("projects", rep.Projects),
		slog.Int("clients", rep.Clients),
		slog.Int("tags", rep.Tags),
	)
	return rep, nil
}

func (uc *SyncUseCase) inWorkspace(id int64) bool {
	return uc.WorkspaceID == 0 || uc.WorkspaceID == id
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := in[:0:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
