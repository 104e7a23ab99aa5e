package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/namelist/internal/config"
	"github.com/five82/namelist/internal/logging"
	"github.com/five82/namelist/internal/logtail"
)

const defaultLogLines = 100

func newLogsCmd(root *rootFlags) *cobra.Command {
	var (
		lines int
		level string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the diagnostics log",
		Long:  "Print recent lines from the log file the TUI writes to, optionally keeping only a minimum level",
		Example: `  namelist logs
  namelist logs -n 20 --level error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			path := cfg.LogPath()

			all, err := logtail.Read(path, 0)
			if err != nil {
				return err
			}
			if strings.TrimSpace(level) != "" {
				all = logtail.Filter(all, logging.ParseLevel(level))
			}
			if lines > 0 && len(all) > lines {
				all = all[len(all)-lines:]
			}

			if len(all) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No log entries in %s\n", path)
				return nil
			}
			for _, line := range all {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "number of lines to show (0 = all)")
	cmd.Flags().StringVar(&level, "level", "", "minimum level to show (debug, info, warn, error)")

	return cmd
}
