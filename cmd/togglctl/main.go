// Command togglctl calls single Toggl API operations and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"togglv9/internal/adapter/toggl"
	"togglv9/internal/app"
	"togglv9/internal/codec"
	"togglv9/internal/config"
	"togglv9/internal/endpoint"
	"togglv9/internal/optional"
)

const usage = `usage: togglctl [-config file] [-v] <command> [flags]

commands:
  me          show the authenticated user (-related to include related data)
  current     show the running time entry, or null
  projects    list projects (-archived to include archived ones)
  workspaces  list workspaces
  logged      check that the credentials are accepted
  start       start a time entry (-workspace, -description, -project)
`

var errUsage = errors.New("invalid usage")

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file (optional)")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to read .env", slog.String("error", err.Error()))
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	client, err := app.NewTogglClient(logger, cfg)
	if err != nil {
		logger.Error("failed to create client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, client, cfg.Toggl.WorkspaceID, flag.Args(), os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		logger.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run dispatches args[0] to a subcommand and writes its JSON result to out.
func run(ctx context.Context, c *toggl.Client, workspaceID int64, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var result any
	var err error
	switch cmd {
	case "me":
		related := fs.Bool("related", false, "include related data")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		q := endpoint.MeQuery{}
		if *related {
			q.WithRelatedData = optional.Of(true)
		}
		result, err = c.Me(ctx, q)
	case "current":
		result, err = c.CurrentTimeEntry(ctx)
	case "projects":
		archived := fs.Bool("archived", false, "include archived projects")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		q := endpoint.ProjectsQuery{}
		if *archived {
			q.IncludeArchived = optional.Of(true)
		}
		result, err = c.Projects(ctx, q)
	case "workspaces":
		result, err = c.Workspaces(ctx, endpoint.WorkspacesQuery{})
	case "logged":
		if err = c.Logged(ctx); err == nil {
			result = map[string]bool{"logged": true}
		}
	case "start":
		ws := fs.Int64("workspace", workspaceID, "workspace id")
		desc := fs.String("description", "", "entry description")
		project := fs.Int64("project", 0, "project id")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		result, err = c.CreateTimeEntry(ctx, *ws, startRequest(*ws, *desc, *project, time.Now()))
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// startRequest builds a running entry: duration -1 tells the API to start a timer.
func startRequest(ws int64, desc string, project int64, now time.Time) endpoint.CreateTimeEntryRequest {
	req := endpoint.CreateTimeEntryRequest{
		CreatedWith: "togglctl",
		WorkspaceID: ws,
		Start:       codec.NewTimestamp(now),
		Duration:    optional.Of(codec.Seconds(-time.Second)),
	}
	if desc != "" {
		req.Description = optional.Of(desc)
	}
	if project != 0 {
		req.ProjectID = optional.Of(project)
	}
	return req
}
