package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"togglv9/internal/app"
	"togglv9/internal/config"
)

func main() {
	// Flags
	once := flag.Bool("once", false, "Run a single sync and exit")
	interval := flag.Duration("interval", 15*time.Minute, "Sync interval when not running once")
	daily := flag.Bool("daily", false, "Run at local midnight each day (uses SYNC_TZ, default UTC)")
	from := flag.String("from", "", "ISO8601 start time (optional, default: now - 24h)")
	to := flag.String("to", "", "ISO8601 end time (optional, default: now)")
	configPath := flag.String("config", "", "Path to a TOML config file (optional)")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	flag.Parse()

	// Logger
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to read .env", slog.String("error", err.Error()))
	}

	// Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Parse time window flags (accept RFC3339 or date-only YYYY-MM-DD)
	now := time.Now().UTC()
	toTime, err := app.ParseEnd(*to, now)
	if err != nil {
		logger.Error("invalid --to", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fromTime, err := app.ParseStart(*from, toTime.Add(-24*time.Hour))
	if err != nil {
		logger.Error("invalid --from", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// App
	application, err := app.New(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to initialize app", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer application.Close()

	if *once {
		rep, err := application.RunOnce(ctx, fromTime, toTime)
		if err != nil {
			logger.Error("sync failed", slog.String("run_id", rep.RunID), slog.String("error", err.Error()))
			application.Close()
			os.Exit(1)
		}
		logger.Info("sync completed", slog.String("run_id", rep.RunID), slog.Int("entries", rep.Entries))
		return
	}

	if cfg.HTTP.Addr != "" {
		srv := application.HTTPServer(cfg.HTTP.Addr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server failed", slog.String("error", err.Error()))
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// Daily-at-midnight mode (default for container)
	if *daily {
		loc, err := time.LoadLocation(cfg.Sync.Timezone)
		if err != nil {
			logger.Error("invalid SYNC_TZ", slog.String("tz", cfg.Sync.Timezone), slog.String("error", err.Error()))
			application.Close()
			os.Exit(1)
		}
		logger.Info("starting daily sync at midnight", slog.String("tz", cfg.Sync.Timezone))
		for {
			next := nextMidnight(time.Now().In(loc))
			dur := time.Until(next)
			logger.Info("sleeping until next midnight", slog.Time("next", next), slog.Duration("sleep", dur))
			select {
			case <-ctx.Done():
				logger.Info("shutting down")
				return
			case <-time.After(dur):
				// Window is the local day that just ended, expressed in UTC.
				endUTC := next.UTC()
				startUTC := next.AddDate(0, 0, -1).UTC()
				if _, err := application.RunOnce(ctx, startUTC, endUTC); err != nil {
					logger.Error("daily sync failed", slog.String("error", err.Error()))
				} else {
					logger.Info("daily sync completed", slog.Time("from", startUTC), slog.Time("to", endUTC))
				}
			}
		}
	}

	// Periodic mode
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	logger.Info("starting periodic sync", slog.Duration("interval", *interval))
	// Kick off immediately
	if _, err := application.RunOnce(ctx, fromTime, toTime); err != nil {
		logger.Error("initial sync failed", slog.String("error", err.Error()))
	}
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case <-ticker.C:
			end := time.Now().UTC()
			start := end.Add(-24 * time.Hour)
			if _, err := application.RunOnce(ctx, start, end); err != nil {
				logger.Error("periodic sync failed", slog.String("error", err.Error()))
			}
		}
	}
}

// nextMidnight returns the first midnight strictly after t in t's location.
func nextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}
