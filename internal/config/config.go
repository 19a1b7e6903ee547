package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds file- and environment-driven configuration.
type Config struct {
	Toggl struct {
		APIToken    string
		User        string // used with Password when no token is set
		Password    string
		WorkspaceID int64  // 0 syncs every workspace
		BaseURL     string // default: https://api.track.toggl.com

		Timeout time.Duration // default: 30s
	}
	Sink struct {
		Driver string // mysql (default), sqlite or postgres
		DSN    string // e.g., user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
	}
	Sync struct {
		Timezone string // e.g., UTC (default), Europe/Berlin
	}
	HTTP struct {
		Addr string // empty disables the trigger server
	}
}

// fileConfig mirrors the TOML layout.
type fileConfig struct {
	Toggl struct {
		APIToken    string `toml:"api_token"`
		User        string `toml:"user"`
		Password    string `toml:"password"`
		WorkspaceID int64  `toml:"workspace_id"`
		BaseURL     string `toml:"base_url"`
		Timeout     string `toml:"timeout"`
	} `toml:"toggl"`
	Sink struct {
		Driver string `toml:"driver"`
		DSN    string `toml:"dsn"`
	} `toml:"sink"`
	Sync struct {
		Timezone string `toml:"timezone"`
	} `toml:"sync"`
	HTTP struct {
		Addr string `toml:"addr"`
	} `toml:"http"`
}

var drivers = map[string]bool{"mysql": true, "sqlite": true, "postgres": true}

// Load reads the optional TOML file at path, then lets environment variables
// override it, then applies defaults.
func Load(path string) (Config, error) {
	var cfg Config

	if strings.TrimSpace(path) != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	setString(&cfg.Toggl.APIToken, "TOGGL_API_TOKEN")
	setString(&cfg.Toggl.User, "TOGGL_USER")
	setString(&cfg.Toggl.Password, "TOGGL_PASSWORD")
	setString(&cfg.Toggl.BaseURL, "TOGGL_BASE_URL")
	if ws := os.Getenv("TOGGL_WORKSPACE_ID"); ws != "" {
		v, err := strconv.ParseInt(ws, 10, 64)
		if err != nil {
			return cfg, errors.New("TOGGL_WORKSPACE_ID must be an integer")
		}
		cfg.Toggl.WorkspaceID = v
	}
	if t := os.Getenv("TOGGL_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return cfg, errors.New("TOGGL_TIMEOUT must be a duration like 30s")
		}
		cfg.Toggl.Timeout = d
	}
	// MYSQL_DSN predates SINK_DSN and is still honoured.
	setString(&cfg.Sink.DSN, "MYSQL_DSN")
	setString(&cfg.Sink.DSN, "SINK_DSN")
	setString(&cfg.Sink.Driver, "SINK_DRIVER")
	setString(&cfg.Sync.Timezone, "SYNC_TZ")
	setString(&cfg.HTTP.Addr, "HTTP_ADDR")

	if cfg.Toggl.APIToken == "" && (cfg.Toggl.User == "" || cfg.Toggl.Password == "") {
		return cfg, errors.New("TOGGL_API_TOKEN or TOGGL_USER and TOGGL_PASSWORD are required")
	}
	if cfg.Toggl.BaseURL == "" {
		cfg.Toggl.BaseURL = "https://api.track.toggl.com"
	}
	if cfg.Toggl.Timeout <= 0 {
		cfg.Toggl.Timeout = 30 * time.Second
	}
	cfg.Sink.Driver = strings.ToLower(cfg.Sink.Driver)
	if cfg.Sink.Driver == "" {
		cfg.Sink.Driver = "mysql"
	}
	if !drivers[cfg.Sink.Driver] {
		return cfg, fmt.Errorf("unsupported sink driver %q", cfg.Sink.Driver)
	}
	if cfg.Sync.Timezone == "" {
		cfg.Sync.Timezone = "UTC"
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var raw fileConfig
	if err := toml.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	cfg.Toggl.APIToken = strings.TrimSpace(raw.Toggl.APIToken)
	cfg.Toggl.User = strings.TrimSpace(raw.Toggl.User)
	cfg.Toggl.Password = raw.Toggl.Password
	cfg.Toggl.WorkspaceID = raw.Toggl.WorkspaceID
	cfg.Toggl.BaseURL = strings.TrimSpace(raw.Toggl.BaseURL)
	if t := strings.TrimSpace(raw.Toggl.Timeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("parse config: toggl.timeout: %w", err)
		}
		cfg.Toggl.Timeout = d
	}
	cfg.Sink.Driver = strings.TrimSpace(raw.Sink.Driver)
	cfg.Sink.DSN = strings.TrimSpace(raw.Sink.DSN)
	cfg.Sync.Timezone = strings.TrimSpace(raw.Sync.Timezone)
	cfg.HTTP.Addr = strings.TrimSpace(raw.HTTP.Addr)
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
