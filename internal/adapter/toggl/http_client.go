package toggl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"togglv9/internal/domain"
	"togglv9/internal/endpoint"
	"togglv9/internal/optional"
	"togglv9/internal/ports"
)

const (
	DefaultBaseURL   = "https://api.track.toggl.com"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "toggl-scraper/0.2"
	maxErrorBody     = 4096
)

var _ ports.TogglClient = (*Client)(nil)

// Auth is the Basic auth pair sent on every call.
type Auth struct {
	User     string
	Password string
}

// TokenAuth authenticates with an API token: the token is the user name and
// the password is the literal "api_token".
func TokenAuth(token string) Auth {
	return Auth{User: token, Password: "api_token"}
}

// Client implements the Toggl Track API v9. It holds no per-call state and
// is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	auth      Auth
	http      *http.Client
	userAgent string
	log       *slog.Logger
	timeout   time.Duration
}

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL overrides DefaultBaseURL. Any path is kept as a prefix.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return nil
		}
		u, err := url.Parse(trimmed)
		if err != nil {
			return fmt.Errorf("parse base url %q: %w", raw, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base url %q must include scheme and host", raw)
		}
		c.baseURL = u
		return nil
	}
}

// WithHTTPClient sets the transport. The client is shared, never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc != nil {
			c.http = hc
		}
		return nil
	}
}

// WithTimeout sets the request timeout. It is applied to a copy of the
// transport after all options run, so it composes with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d > 0 {
			c.timeout = d
		}
		return nil
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) error {
		if log != nil {
			c.log = log
		}
		return nil
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua != "" {
			c.userAgent = ua
		}
		return nil
	}
}

func NewClient(auth Auth, opts ...Option) (*Client, error) {
	if auth.User == "" {
		return nil, errors.New("toggl: missing credentials")
	}
	base, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		baseURL:   base,
		auth:      auth,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// Call performs one operation described by e. GET requests carry req as a
// query string; other methods send it as a JSON body unless it is
// endpoint.None. An empty or null response body yields the zero Resp.
func Call[Req, Resp any](ctx context.Context, c *Client, e endpoint.Endpoint[Req, Resp], params endpoint.Params, req Req) (Resp, error) {
	var out Resp
	if c == nil {
		return out, &Error{Endpoint: e.Name, Err: errors.New("client is nil")}
	}
	u, err := e.URL(c.baseURL, params, req)
	if err != nil {
		return out, &Error{Endpoint: e.Name, Err: err}
	}

	var body io.Reader
	if e.Method != http.MethodGet {
		if _, none := any(req).(endpoint.None); !none {
			b, err := json.Marshal(req)
			if err != nil {
				return out, &Error{Endpoint: e.Name, Err: fmt.Errorf("encode request: %w", err)}
			}
			body = bytes.NewReader(b)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, e.Method, u.String(), body)
	if err != nil {
		return out, &Error{Endpoint: e.Name, Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.SetBasicAuth(c.auth.User, c.auth.Password)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return out, &Error{Endpoint: e.Name, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, &Error{Endpoint: e.Name, Err: fmt.Errorf("read response: %w", err)}
	}
	c.log.Debug("toggl request",
		slog.String("endpoint", e.Name),
		slog.String("method", e.Method),
		slog.Int("status", resp.StatusCode),
		slog.Duration("dur", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return out, &Error{Endpoint: e.Name, Err: &StatusError{StatusCode: resp.StatusCode, Body: string(data)}}
	}
	if _, none := any(out).(endpoint.None); none || len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &Error{Endpoint: e.Name, Err: fmt.Errorf("decode response: %w", err)}
	}
	return out, nil
}

// Me fetches the authenticated user.
func (c *Client) Me(ctx context.Context, q endpoint.MeQuery) (endpoint.MeResponse, error) {
	return Call(ctx, c, endpoint.Me, nil, q)
}

// UpdateMe changes the fields set in req and returns the full user record.
func (c *Client) UpdateMe(ctx context.Context, req endpoint.UpdateMeRequest) (endpoint.UpdateMeResponse, error) {
	return Call(ctx, c, endpoint.UpdateMe, nil, req)
}

func (c *Client) Clients(ctx context.Context, q endpoint.ClientsQuery) ([]domain.Client, error) {
	return Call(ctx, c, endpoint.Clients, nil, q)
}

// CloseAccount permanently closes the authenticated account.
func (c *Client) CloseAccount(ctx context.Context) error {
	_, err := Call(ctx, c, endpoint.CloseAccount, nil, endpoint.None{})
	return err
}

func (c *Client) Features(ctx context.Context) ([]domain.WorkspaceFeatures, error) {
	return Call(ctx, c, endpoint.Features, nil, endpoint.None{})
}

func (c *Client) Location(ctx context.Context) (domain.Location, error) {
	return Call(ctx, c, endpoint.Location, nil, endpoint.None{})
}

// Logged returns nil when the credentials are accepted.
func (c *Client) Logged(ctx context.Context) error {
	_, err := Call(ctx, c, endpoint.Logged, nil, endpoint.None{})
	return err
}

func (c *Client) Organizations(ctx context.Context) ([]domain.Organization, error) {
	return Call(ctx, c, endpoint.Organizations, nil, endpoint.None{})
}

// Projects lists projects visible to the user.
// Toggl v9: GET /api/v9/me/projects?include_archived=...&since=...
func (c *Client) Projects(ctx context.Context, q endpoint.ProjectsQuery) ([]domain.Project, error) {
	return Call(ctx, c, endpoint.Projects, nil, q)
}

func (c *Client) Tags(ctx context.Context, q endpoint.TagsQuery) ([]domain.Tag, error) {
	return Call(ctx, c, endpoint.Tags, nil, q)
}

func (c *Client) Tasks(ctx context.Context, q endpoint.TasksQuery) ([]domain.Task, error) {
	return Call(ctx, c, endpoint.Tasks, nil, q)
}

func (c *Client) TrackReminders(ctx context.Context) ([]domain.TrackReminder, error) {
	return Call(ctx, c, endpoint.TrackReminders, nil, endpoint.None{})
}

func (c *Client) Workspaces(ctx context.Context, q endpoint.WorkspacesQuery) ([]domain.Workspace, error) {
	return Call(ctx, c, endpoint.Workspaces, nil, q)
}

// TimeEntries lists the user's time entries.
// Toggl v9: GET /api/v9/me/time_entries?since=...&before=...&start_date=...&end_date=...
func (c *Client) TimeEntries(ctx context.Context, q endpoint.TimeEntriesQuery) ([]domain.TimeEntry, error) {
	return Call(ctx, c, endpoint.TimeEntries, nil, q)
}

// CurrentTimeEntry returns the running entry, absent when nothing runs.
func (c *Client) CurrentTimeEntry(ctx context.Context) (optional.Value[domain.TimeEntry], error) {
	return Call(ctx, c, endpoint.CurrentTimeEntry, nil, endpoint.None{})
}

// CreateTimeEntry creates an entry in workspaceID. A zero workspaceID fails
// before any request is sent.
func (c *Client) CreateTimeEntry(ctx context.Context, workspaceID int64, req endpoint.CreateTimeEntryRequest) (domain.TimeEntry, error) {
	params := endpoint.WorkspaceParams{WorkspaceID: workspaceID}
	return Call(ctx, c, endpoint.CreateTimeEntry, params.PathParams(), req)
}
