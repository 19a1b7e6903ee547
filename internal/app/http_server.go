package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"togglv9/internal/usecase"
)

// HTTPServer returns a configured http.Server that exposes endpoints to trigger syncs.
// Call ListenAndServe on the returned server in a goroutine and Shutdown it on exit.
func (a *App) HTTPServer(addr string) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           loggingMiddleware(a.log, a.routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.log.Info("http trigger server configured", slog.String("addr", addr))
	return srv
}

func (a *App) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// /sync?from=...&to=...
	// from/to accept RFC3339 or YYYY-MM-DD. If omitted, defaults to [now-24h, now].
	mux.HandleFunc("/sync", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		q := r.URL.Query()
		toTime, err := ParseEnd(q.Get("to"), time.Now().UTC())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fromTime, err := ParseStart(q.Get("from"), toTime.Add(-24*time.Hour))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// Optional timeout override: ?timeout=5m
		ctx := r.Context()
		if tStr := q.Get("timeout"); tStr != "" {
			d, err := time.ParseDuration(tStr)
			if err != nil || d <= 0 {
				http.Error(w, "timeout must be a positive duration", http.StatusBadRequest)
				return
			}
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}

		rep, err := a.RunOnce(ctx, fromTime, toTime)
		body := map[string]any{
			"from": fromTime.Format(time.RFC3339),
			"to":   toTime.Format(time.RFC3339),
		}
		if rep.RunID != "" {
			body["run_id"] = rep.RunID
		}
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, usecase.ErrAlreadyRunning) {
				status = http.StatusConflict
			}
			body["status"] = "error"
			body["error"] = err.Error()
			writeJSON(w, status, body)
			return
		}
		body["status"] = "ok"
		body["entries"] = rep.Entries
		body["projects"] = rep.Projects
		body["clients"] = rep.Clients
		body["tags"] = rep.Tags
		writeJSON(w, http.StatusOK, body)
	})

	// /current reports the running time entry, or null when the timer is stopped.
	mux.HandleFunc("/current", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		cur, err := a.toggl.CurrentTimeEntry(r.Context())
		if err != nil {
			a.log.Error("current time entry failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadGateway, map[string]any{"status": "error", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, cur)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// loggingMiddleware provides basic request logging.
func loggingMiddleware(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
			slog.Duration("dur", time.Since(start)),
		)
	})
}

// ParseStart parses a start boundary that may be RFC3339 or YYYY-MM-DD.
// If empty, defaultVal is returned.
func ParseStart(val string, defaultVal time.Time) (time.Time, error) {
	if val == "" {
		return defaultVal, nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	if d, err := time.Parse(time.DateOnly, val); err == nil {
		return d, nil
	}
	return time.Time{}, errors.New("invalid from, expected RFC3339 or YYYY-MM-DD")
}

// ParseEnd parses an end boundary that may be RFC3339 or YYYY-MM-DD.
// Date-only form is treated as inclusive by converting to next-day 00:00 UTC.
// If empty, defaultVal is returned.
func ParseEnd(val string, defaultVal time.Time) (time.Time, error) {
	if val == "" {
		return defaultVal, nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	if d, err := time.Parse(time.DateOnly, val); err == nil {
		return d.AddDate(0, 0, 1), nil
	}
	return time.Time{}, errors.New("invalid to, expected RFC3339 or YYYY-MM-DD")
}
