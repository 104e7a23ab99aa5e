package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/namelist/internal/config"
	"github.com/five82/namelist/internal/logging"
	"github.com/five82/namelist/internal/names"
	"github.com/five82/namelist/internal/prefs"
	"github.com/five82/namelist/internal/state"
)

// Options configure how the application environment is assembled.
type Options struct {
	ConfigPath   string
	PrefsPath    string        // empty uses ~/.config/namelist/prefs.toml
	APIURL       string        // overrides the configured api_url
	RefreshEvery time.Duration // overrides refresh_seconds when positive
	Debug        bool
	Headless     bool // log to Stderr instead of the log file
	Stderr       io.Writer
	Version      string // reported in the User-Agent header; empty means "dev"
}

// Env is everything a front end needs to drive the names list.
type Env struct {
	Config     config.Config
	Prefs      prefs.Prefs
	PrefsPath  string
	Log        zerolog.Logger
	Client     *names.Client
	Store      *state.Store
	Controller *Controller

	logs *logging.Result
}

// Setup loads configuration and preferences, builds the logger and wires
// the API client, store and controller together.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.RefreshEvery > 0 {
		cfg.RefreshEvery = opts.RefreshEvery
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	logCfg := logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Stderr: stderr,
	}
	if opts.Debug {
		logCfg.Level = "debug"
	}
	if !opts.Headless {
		logCfg.File = cfg.LogPath()
	}
	logs := logging.New(logCfg)
	if logs.FallbackUsed && !opts.Headless {
		logging.PrintFallbackWarning(stderr, logs.FallbackReason)
	}

	client, err := names.NewClient(cfg.APIURL,
		names.WithTimeout(cfg.RequestTimeout),
		names.WithLogger(logging.ComponentLogger(logs.Logger, "client")),
		names.WithUserAgent(userAgent(opts.Version)),
	)
	if err != nil {
		_ = logs.Close()
		return nil, fmt.Errorf("init names client: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	store := state.New(
		state.WithLogger(logging.ComponentLogger(logs.Logger, "store")),
		state.WithSortMode(userPrefs.Sort),
		state.WithPageSize(userPrefs.PageSize),
	)

	logs.Logger.Debug().
		Str("api", client.BaseURL()).
		Str("user_agent", client.UserAgent()).
		Str("sort", userPrefs.Sort.String()).
		Int("page_size", userPrefs.PageSize).
		Msg("namelist ready")

	return &Env{
		Config:     cfg,
		Prefs:      userPrefs,
		PrefsPath:  prefsPath,
		Log:        logs.Logger,
		Client:     client,
		Store:      store,
		Controller: NewController(store, client, logging.ComponentLogger(logs.Logger, "controller")),
		logs:       logs,
	}, nil
}

// userAgent builds the client's User-Agent from the build version.
func userAgent(version string) string {
	if version = strings.TrimSpace(version); version == "" {
		version = "dev"
	}
	return "namelist/" + version
}

// LogPath returns the file diagnostics are written to, or "" when logging
// to Stderr.
func (e *Env) LogPath() string {
	if e.logs == nil || !e.logs.UsingFile {
		return ""
	}
	return e.logs.FilePath
}

// Close releases the log file.
func (e *Env) Close() error {
	if e == nil {
		return nil
	}
	return e.logs.Close()
}
