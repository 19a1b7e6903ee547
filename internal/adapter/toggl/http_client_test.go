package toggl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"togglv9/internal/codec"
	"togglv9/internal/endpoint"
	"togglv9/internal/optional"
)

const entryJSON = `{"id":77,"workspace_id":12345,"user_id":3,"project_id":null,"billable":false,
	"description":"Standup","start":"2025-08-01T09:00:00Z","stop":null,"duration":-1754038800,
	"duronly":true,"tags":[],"tag_ids":null,"at":"2025-08-01T09:00:01Z","wid":12345,"uid":3}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(TokenAuth("tok"),
		WithBaseURL(srv.URL),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient(Auth{}); err == nil {
		t.Fatalf("NewClient with empty auth returned nil error")
	}
	if _, err := NewClient(TokenAuth("x"), WithBaseURL("no-scheme")); err == nil {
		t.Fatalf("NewClient with relative base url returned nil error")
	}
	c, err := NewClient(TokenAuth("x"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.baseURL.String() != DefaultBaseURL {
		t.Fatalf("baseURL = %s, want default", c.baseURL)
	}
}

func TestClient_SendsBasicAuthAndQuery(t *testing.T) {
	t.Parallel()

	var gotUser, gotPass, gotPath, gotQuery, gotUA string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	})

	since := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	projects, err := c.Projects(context.Background(), endpoint.ProjectsQuery{
		IncludeArchived: optional.Of(true),
		Since:           optional.Of(since),
	})
	if err != nil {
		t.Fatalf("Projects returned error: %v", err)
	}
	if projects == nil || len(projects) != 0 {
		t.Fatalf("projects = %#v, want empty non-nil slice", projects)
	}
	if gotUser != "tok" || gotPass != "api_token" {
		t.Fatalf("basic auth = %q:%q", gotUser, gotPass)
	}
	if gotPath != "/api/v9/me/projects" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotQuery != "include_archived=true&since=1704164645" {
		t.Fatalf("query = %q", gotQuery)
	}
	if !strings.HasPrefix(gotUA, "toggl-scraper/") {
		t.Fatalf("User-Agent = %q", gotUA)
	}

	if _, err := c.Tags(context.Background(), endpoint.TagsQuery{}); err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if gotPath != "/api/v9/me/tags" || gotQuery != "" {
		t.Fatalf("tags request = %q?%q, want no query", gotPath, gotQuery)
	}
}

func TestClient_CurrentTimeEntry(t *testing.T) {
	t.Parallel()

	var body atomic.Value
	body.Store("null")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v9/me/time_entries/current" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body.Load().(string)))
	})

	cur, err := c.CurrentTimeEntry(context.Background())
	if err != nil {
		t.Fatalf("CurrentTimeEntry(null) returned error: %v", err)
	}
	if cur.IsSet() {
		t.Fatalf("null payload should decode as absent")
	}

	body.Store("")
	if cur, err = c.CurrentTimeEntry(context.Background()); err != nil || cur.IsSet() {
		t.Fatalf("empty payload = %v, %v; want absent", cur, err)
	}

	body.Store(entryJSON)
	cur, err = c.CurrentTimeEntry(context.Background())
	if err != nil {
		t.Fatalf("CurrentTimeEntry returned error: %v", err)
	}
	e, ok := cur.Get()
	if !ok || e.ID != 77 || !e.Running() {
		t.Fatalf("current = %#v (set=%v)", e, ok)
	}
	if d, _ := e.Description.Get(); d != "Standup" {
		t.Fatalf("description = %q", d)
	}
}

func TestClient_CreateTimeEntry(t *testing.T) {
	t.Parallel()

	var gotPath, gotMethod, gotType string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		gotType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(entryJSON))
	})

	start := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	req := endpoint.CreateTimeEntryRequest{
		CreatedWith: "toggl-scraper",
		WorkspaceID: 12345,
		Start:       codec.NewTimestamp(start),
		Duration:    optional.Of(codec.Seconds(-start.Unix() * int64(time.Second))),
		Description: optional.Of("Standup"),
		Tags:        optional.Of([]string{}),
	}
	entry, err := c.CreateTimeEntry(context.Background(), 12345, req)
	if err != nil {
		t.Fatalf("CreateTimeEntry returned error: %v", err)
	}
	if entry.ID != 77 {
		t.Fatalf("entry id = %d", entry.ID)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/v9/workspaces/12345/time_entries" {
		t.Fatalf("request = %s %s", gotMethod, gotPath)
	}
	if gotType != "application/json" {
		t.Fatalf("Content-Type = %q", gotType)
	}
	if gotBody["duration"] != float64(-start.Unix()) || gotBody["start"] != "2025-08-01T09:00:00Z" {
		t.Fatalf("body = %v", gotBody)
	}
	for _, k := range []string{"stop", "project_id", "billable", "tag_ids"} {
		if _, ok := gotBody[k]; ok {
			t.Fatalf("absent field %q was sent: %v", k, gotBody)
		}
	}
	if tags, ok := gotBody["tags"].([]any); !ok || len(tags) != 0 {
		t.Fatalf("present empty tags not sent: %v", gotBody)
	}
}

func TestClient_UnboundWorkspaceFailsBeforeNetwork(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})
	_, err := c.CreateTimeEntry(context.Background(), 0, endpoint.CreateTimeEntryRequest{})
	if !errors.Is(err, endpoint.ErrUnboundPathParameter) {
		t.Fatalf("error = %v, want ErrUnboundPathParameter", err)
	}
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Endpoint != "create_time_entry" {
		t.Fatalf("error = %#v, want *Error for create_time_entry", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("server was contacted %d times", hits.Load())
	}
}

func TestClient_InvalidWeekdaySurfacesAsClientError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"email":"a@b.c","fullname":"A","beginning_of_week":9,
			"timezone":"UTC","image_url":"","has_password":true,"openid_enabled":false,
			"at":"2025-01-01T00:00:00Z","created_at":"2025-01-01T00:00:00Z","updated_at":"2025-01-01T00:00:00Z"}`))
	})
	_, err := c.Me(context.Background(), endpoint.MeQuery{})
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if !errors.Is(err, codec.ErrInvalidEnumValue) {
		t.Fatalf("error = %v, want ErrInvalidEnumValue cause", err)
	}
}

func TestClient_MeWithRelatedData(t *testing.T) {
	t.Parallel()

	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"id":1,"email":"a@b.c","fullname":"A","beginning_of_week":1,
			"default_workspace_id":12345,"timezone":"Europe/Berlin","image_url":"","has_password":true,
			"openid_enabled":false,"projects":[],"at":"2025-01-01T00:00:00Z",
			"created_at":"2025-01-01T00:00:00Z","updated_at":"2025-01-01T00:00:00Z"}`))
	})
	me, err := c.Me(context.Background(), endpoint.MeQuery{WithRelatedData: optional.Of(true)})
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if gotQuery != "with_related_data=true" {
		t.Fatalf("query = %q", gotQuery)
	}
	if me.BeginningOfWeek != codec.Monday {
		t.Fatalf("beginning_of_week = %v", me.BeginningOfWeek)
	}
	if p, ok := me.Projects.Get(); !ok || len(p) != 0 {
		t.Fatalf("projects should be present and empty")
	}
	if me.Workspaces.IsSet() || me.CountryID.IsSet() {
		t.Fatalf("missing keys should be absent")
	}
}

func TestClient_UpdateMeSendsOnlySetFields(t *testing.T) {
	t.Parallel()

	var gotMethod string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"id":1,"email":"a@b.c","fullname":"A","beginning_of_week":0,"country_id":5,
			"default_workspace_id":2,"timezone":"UTC","image_url":"","has_password":true,"openid_email":"",
			"openid_enabled":false,"at":"2025-01-01T00:00:00Z","created_at":"2025-01-01T00:00:00Z",
			"updated_at":"2025-01-01T00:00:00Z"}`))
	})
	resp, err := c.UpdateMe(context.Background(), endpoint.UpdateMeRequest{
		BeginningOfWeek: optional.Of(codec.Sunday),
	})
	if err != nil {
		t.Fatalf("UpdateMe returned error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Fatalf("method = %s", gotMethod)
	}
	if len(gotBody) != 1 || gotBody["beginning_of_week"] != float64(0) {
		t.Fatalf("body = %v, want only beginning_of_week", gotBody)
	}
	if resp.CountryID != 5 {
		t.Fatalf("country_id = %d", resp.CountryID)
	}
}

func TestClient_NoBodyEndpoints(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	var gotLen int64
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotLen = r.Method, r.URL.Path, r.ContentLength
		w.WriteHeader(http.StatusOK)
	})
	if err := c.Logged(context.Background()); err != nil {
		t.Fatalf("Logged returned error: %v", err)
	}
	if gotMethod != http.MethodGet || gotPath != "/api/v9/me/logged" {
		t.Fatalf("logged request = %s %s", gotMethod, gotPath)
	}
	if err := c.CloseAccount(context.Background()); err != nil {
		t.Fatalf("CloseAccount returned error: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/v9/me/close_account" || gotLen != 0 {
		t.Fatalf("close_account request = %s %s (len %d)", gotMethod, gotPath, gotLen)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v9/me/logged":
			http.Error(w, "Incorrect username and/or password", http.StatusForbidden)
		case "/api/v9/me/tags":
			_, _ = w.Write([]byte("{not-json"))
		case "/api/v9/me/clients":
			_, _ = w.Write([]byte(`[{"id":1,"wid":2,"name":"c","archived":false,"at":"soon"}]`))
		default:
			http.NotFound(w, r)
		}
	})

	err := c.Logged(context.Background())
	var serr *StatusError
	if !errors.As(err, &serr) || serr.StatusCode != http.StatusForbidden {
		t.Fatalf("Logged error = %v, want 403 StatusError", err)
	}

	_, err = c.Tags(context.Background(), endpoint.TagsQuery{})
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Tags error = %v, want decode response error", err)
	}

	_, err = c.Clients(context.Background(), endpoint.ClientsQuery{})
	if !errors.Is(err, codec.ErrMalformedTimestamp) {
		t.Fatalf("Clients error = %v, want ErrMalformedTimestamp", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient(TokenAuth("tok"), WithBaseURL(url), WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.Workspaces(context.Background(), endpoint.WorkspacesQuery{})
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Endpoint != "workspaces" {
		t.Fatalf("error = %v, want *Error for workspaces", err)
	}
	var serr *StatusError
	if errors.As(err, &serr) {
		t.Fatalf("transport failure reported as status error: %v", err)
	}
}

func TestClient_ConcurrentCalls(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[` + entryJSON + `]`))
	})
	errs := make(chan error, 8)
	for i := 0; i < cap(errs); i++ {
		go func() {
			entries, err := c.TimeEntries(context.Background(), endpoint.TimeEntriesQuery{})
			if err == nil && len(entries) != 1 {
				err = errors.New("unexpected entry count")
			}
			errs <- err
		}()
	}
	for i := 0; i < cap(errs); i++ {
		if err := <-errs; err != nil {
			t.Fatalf("concurrent call: %v", err)
		}
	}
}

func TestNewClient_TimeoutKeepsCustomHTTPClient(t *testing.T) {
	custom := &http.Client{Transport: http.DefaultTransport}
	for _, opts := range [][]Option{
		{WithHTTPClient(custom), WithTimeout(3 * time.Second)},
		{WithTimeout(3 * time.Second), WithHTTPClient(custom)},
	} {
		c, err := NewClient(TokenAuth("x"), opts...)
		if err != nil {
			t.Fatalf("NewClient: %v", err)
		}
		if c.http.Transport != custom.Transport || c.http.Timeout != 3*time.Second {
			t.Fatalf("http client = %+v, want custom transport with 3s timeout", c.http)
		}
	}
	if custom.Timeout != 0 {
		t.Fatalf("caller's http.Client was modified: timeout %v", custom.Timeout)
	}
}

func TestClient_NullWeekdayInMandatoryField(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"email":"a@b.c","fullname":"A","beginning_of_week":null,
			"timezone":"UTC","image_url":"","has_password":true,"openid_enabled":false,
			"at":"2025-01-01T00:00:00Z","created_at":"2025-01-01T00:00:00Z","updated_at":"2025-01-01T00:00:00Z"}`))
	})
	if _, err := c.Me(context.Background(), endpoint.MeQuery{}); !errors.Is(err, codec.ErrInvalidEnumValue) {
		t.Fatalf("error = %v, want ErrInvalidEnumValue", err)
	}
}
