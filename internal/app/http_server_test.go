package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"togglv9/internal/codec"
	"togglv9/internal/domain"
	"togglv9/internal/endpoint"
	"togglv9/internal/optional"
	"togglv9/internal/usecase"
)

type stubToggl struct {
	current optional.Value[domain.TimeEntry]
	block   chan struct{}
	started chan struct{}
}

func (s *stubToggl) TimeEntries(ctx context.Context, q endpoint.TimeEntriesQuery) ([]domain.TimeEntry, error) {
	if s.block != nil {
		close(s.started)
		<-s.block
	}
	return nil, nil
}

func (s *stubToggl) Projects(ctx context.Context, q endpoint.ProjectsQuery) ([]domain.Project, error) {
	return nil, nil
}

func (s *stubToggl) Clients(ctx context.Context, q endpoint.ClientsQuery) ([]domain.Client, error) {
	return []domain.Client{{ID: 1}}, nil
}

func (s *stubToggl) Tags(ctx context.Context, q endpoint.TagsQuery) ([]domain.Tag, error) {
	return nil, nil
}

func (s *stubToggl) CurrentTimeEntry(ctx context.Context) (optional.Value[domain.TimeEntry], error) {
	return s.current, nil
}

type nopSink struct{}

func (nopSink) SyncEntries(context.Context, []domain.TimeEntry) error { return nil }
func (nopSink) SyncProjects(context.Context, []domain.Project) error  { return nil }
func (nopSink) SyncClients(context.Context, []domain.Client) error    { return nil }
func (nopSink) SyncTags(context.Context, []domain.Tag) error          { return nil }

func newTestApp(t *testing.T, toggl *stubToggl) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := &App{
		log:   log,
		uc:    &usecase.SyncUseCase{Log: log, Toggl: toggl, Sink: nopSink{}},
		toggl: toggl,
	}
	srv := httptest.NewServer(loggingMiddleware(log, a.routes()))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestApp(t, &stubToggl{})
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(b) != "ok" {
		t.Fatalf("healthz = %d %q", resp.StatusCode, b)
	}
}

func TestSync_ReportsRun(t *testing.T) {
	srv := newTestApp(t, &stubToggl{})
	resp, err := http.Post(srv.URL+"/sync?from=2025-08-01&to=2025-08-01", "", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("sync = %d %v", resp.StatusCode, body)
	}
	if body["from"] != "2025-08-01T00:00:00Z" || body["to"] != "2025-08-02T00:00:00Z" {
		t.Fatalf("window = %v..%v", body["from"], body["to"])
	}
	if id, _ := body["run_id"].(string); id == "" {
		t.Fatalf("missing run_id: %v", body)
	}
	if body["clients"] != float64(1) {
		t.Fatalf("clients = %v", body["clients"])
	}
}

func TestSync_BadInput(t *testing.T) {
	srv := newTestApp(t, &stubToggl{})
	for _, q := range []string{"from=yesterday", "to=08/01/2025", "timeout=soon", "timeout=-1s"} {
		resp, err := http.Get(srv.URL + "/sync?" + q)
		if err != nil {
			t.Fatalf("GET %s: %v", q, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", q, resp.StatusCode)
		}
	}
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/sync", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE status = %d", resp.StatusCode)
	}
}

func TestSync_ConflictWhileRunning(t *testing.T) {
	toggl := &stubToggl{block: make(chan struct{}), started: make(chan struct{})}
	srv := newTestApp(t, toggl)

	first := make(chan int, 1)
	go func() {
		resp, err := http.Post(srv.URL+"/sync", "", nil)
		if err != nil {
			first <- 0
			return
		}
		resp.Body.Close()
		first <- resp.StatusCode
	}()
	select {
	case <-toggl.started:
	case <-time.After(2 * time.Second):
		t.Fatalf("first sync never started")
	}

	resp, err := http.Post(srv.URL+"/sync", "", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict || !strings.Contains(string(b), "already running") {
		t.Fatalf("second sync = %d %s", resp.StatusCode, b)
	}

	close(toggl.block)
	if code := <-first; code != http.StatusOK {
		t.Fatalf("first sync status = %d", code)
	}
}

func TestCurrent(t *testing.T) {
	stopped := newTestApp(t, &stubToggl{})
	resp, err := http.Get(stopped.URL + "/current")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.TrimSpace(string(b)) != "null" {
		t.Fatalf("stopped timer body = %s", b)
	}

	start := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	running := newTestApp(t, &stubToggl{current: optional.Of(domain.TimeEntry{
		ID:       7,
		Start:    codec.NewTimestamp(start),
		Duration: codec.Seconds(-time.Duration(start.Unix()) * time.Second),
	})})
	resp, err = http.Get(running.URL + "/current")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var entry domain.TimeEntry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry.ID != 7 || !entry.Running() {
		t.Fatalf("entry = %+v", entry)
	}
}

func TestParseBoundaries(t *testing.T) {
	def := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if got, _ := ParseStart("", def); !got.Equal(def) {
		t.Fatalf("empty start = %v", got)
	}
	if got, _ := ParseEnd("2025-08-31", def); !got.Equal(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date-only end = %v", got)
	}
	if got, _ := ParseStart("2025-08-01T10:00:00+02:00", def); !got.Equal(time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("rfc3339 start = %v", got)
	}
}
