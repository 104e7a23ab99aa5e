package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/namelist/internal/names"
)

func newAddCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a name to the collection",
		Long:  "Validate NAME, add it to the collection and reload. Words are joined with single spaces.",
		Example: `  namelist add Ada
  namelist add "Grace Hopper"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, _, err := setupHeadless(cmd, root)
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			rec, err := env.Controller.Add(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s added to the list\n", rec.Name)
			if msg := env.Store.Err(); msg != "" {
				cmd.PrintErrf("Warning: %s\n", msg)
			}
			return nil
		},
	}
}

func newDeleteCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a name by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, _, err := setupHeadless(cmd, root)
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			if err := env.Controller.Delete(cmd.Context(), names.ID(args[0])); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Name deleted from the list")
			return nil
		},
	}
}

func newHealthCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the names API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, logger, err := setupHeadless(cmd, root)
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), env.Config.RequestTimeout)
			defer cancel()
			if err := env.Client.Health(ctx); err != nil {
				logger.Debug().Err(err).Msg("health check failed")
				return fmt.Errorf("names API at %s is unreachable: %w", env.Client.BaseURL(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "names API at %s is healthy\n", env.Client.BaseURL())
			return nil
		},
	}
}
