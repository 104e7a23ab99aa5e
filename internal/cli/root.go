package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/namelist/internal/app"
	"github.com/five82/namelist/internal/logging"
	"github.com/five82/namelist/internal/ui"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	configPath string
	prefsPath  string
	apiURL     string
	debug      bool
	refresh    int
	version    string
}

// NewRootCmd creates the root Cobra command. Without a subcommand it starts
// the terminal UI.
func NewRootCmd(ver string) *cobra.Command {
	flags := &rootFlags{version: ver}

	cmd := &cobra.Command{
		Use:          "namelist",
		Short:        "Browse and edit a names collection",
		Long:         "namelist: a terminal client for a names collection API with sorting and pagination",
		Version:      ver,
		Example:      rootCmdExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if flags.refresh < 0 {
				return fmt.Errorf("refresh must be >= 0, got %d", flags.refresh)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/namelist/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/namelist/prefs.toml)")
	pf.StringVar(&flags.apiURL, "api", "", "names API base URL, overrides api_url")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.IntVar(&flags.refresh, "refresh", 0, "auto-refresh interval in seconds for the TUI (0 = config default)")

	cmd.AddCommand(
		newListCmd(flags),
		newAddCmd(flags),
		newDeleteCmd(flags),
		newHealthCmd(flags),
		newLogsCmd(flags),
	)

	return cmd
}

const rootCmdExample = `  # Open the interactive list
  namelist

  # Print the second page, newest first
  namelist list --sort date-newest --page 2

  # Export the current page as JSON
  namelist list --page-size 50 --output json

  # Add and delete names
  namelist add "Ada Lovelace"
  namelist delete 42

  # Show recent warnings and errors
  namelist logs -n 50 --level warn`

// options converts the flags into app.Options.
func (f *rootFlags) options(cmd *cobra.Command, headless bool) app.Options {
	return app.Options{
		ConfigPath:   f.configPath,
		PrefsPath:    f.prefsPath,
		APIURL:       f.apiURL,
		RefreshEvery: time.Duration(f.refresh) * time.Second,
		Debug:        f.debug,
		Headless:     headless,
		Stderr:       cmd.ErrOrStderr(),
		Version:      f.version,
	}
}

// setupHeadless builds an environment that logs to stderr.
func setupHeadless(cmd *cobra.Command, flags *rootFlags) (*app.Env, zerolog.Logger, error) {
	env, err := app.Setup(flags.options(cmd, true))
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := logging.ComponentLogger(env.Log, "cli")
	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return env, logger, nil
}

// runTUI starts the interactive interface, logging to the log file.
func runTUI(cmd *cobra.Command, flags *rootFlags) error {
	env, err := app.Setup(flags.options(cmd, false))
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	ctx := cmd.Context()
	if every := env.Config.RefreshEvery; every > 0 {
		app.StartPoller(ctx, env.Controller, every, logging.ComponentLogger(env.Log, "poller"))
	}

	env.Log.Info().Str("api", env.Client.BaseURL()).Msg("starting tui")
	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: env.Controller,
		Prefs:      env.Prefs,
		PrefsPath:  env.PrefsPath,
		Logger:     logging.ComponentLogger(env.Log, "ui"),
	})
}
