package endpoint

import (
	"net/http"

	"togglv9/internal/domain"
	"togglv9/internal/optional"
)

var (
	Me = Endpoint[MeQuery, MeResponse]{
		Name: "me", Method: http.MethodGet, Path: "/me",
	}
	UpdateMe = Endpoint[UpdateMeRequest, UpdateMeResponse]{
		Name: "update_me", Method: http.MethodPut, Path: "/me",
	}
	Clients = Endpoint[ClientsQuery, []domain.Client]{
		Name: "clients", Method: http.MethodGet, Path: "/me/clients",
	}
	CloseAccount = Endpoint[None, None]{
		Name: "close_account", Method: http.MethodPost, Path: "/me/close_account",
	}
	Features = Endpoint[None, []domain.WorkspaceFeatures]{
		Name: "features", Method: http.MethodGet, Path: "/me/features",
	}
	Location = Endpoint[None, domain.Location]{
		Name: "location", Method: http.MethodGet, Path: "/me/location",
	}
	// Logged only checks that the credentials are accepted.
	Logged = Endpoint[None, None]{
		Name: "logged", Method: http.MethodGet, Path: "/me/logged",
	}
	Organizations = Endpoint[None, []domain.Organization]{
		Name: "organizations", Method: http.MethodGet, Path: "/me/organizations",
	}
	Projects = Endpoint[ProjectsQuery, []domain.Project]{
		Name: "projects", Method: http.MethodGet, Path: "/me/projects",
	}
	Tags = Endpoint[TagsQuery, []domain.Tag]{
		Name: "tags", Method: http.MethodGet, Path: "/me/tags",
	}
	Tasks = Endpoint[TasksQuery, []domain.Task]{
		Name: "tasks", Method: http.MethodGet, Path: "/me/tasks",
	}
	TrackReminders = Endpoint[None, []domain.TrackReminder]{
		Name: "track_reminders", Method: http.MethodGet, Path: "/me/track_reminders",
	}
	Workspaces = Endpoint[WorkspacesQuery, []domain.Workspace]{
		Name: "workspaces", Method: http.MethodGet, Path: "/me/workspaces",
	}
	TimeEntries = Endpoint[TimeEntriesQuery, []domain.TimeEntry]{
		Name: "time_entries", Method: http.MethodGet, Path: "/me/time_entries",
	}
	// CurrentTimeEntry answers null when nothing is running.
	CurrentTimeEntry = Endpoint[None, optional.Value[domain.TimeEntry]]{
		Name: "current_time_entry", Method: http.MethodGet, Path: "/me/time_entries/current",
	}
	CreateTimeEntry = Endpoint[CreateTimeEntryRequest, domain.TimeEntry]{
		Name: "create_time_entry", Method: http.MethodPost, Path: "/workspaces/{workspace_id}/time_entries",
	}
)
