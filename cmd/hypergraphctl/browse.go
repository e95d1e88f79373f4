package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/hypergraph/internal/adapter/driving/tui"
)

func newBrowseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Explore the repositories in an interactive terminal UI",
		Long: `Opens the terminal explorer. It shows the snapshot immediately and
replaces it with live data once the GitHub listing completes.

Keys: g/l graph or list view, ←/→ cycle language, a all languages,
r twice to refresh, esc cancel, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The UI owns the terminal; log output would corrupt it.
			slog.SetDefault(quietLogger())

			svc, err := opts.catalogService(slog.Default())
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), svc, svc.Current())
		},
	}
}
