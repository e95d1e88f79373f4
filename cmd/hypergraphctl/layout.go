package main

import (
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/hypergraph/internal/domain/explorer"
)

func newLayoutCmd(opts *options) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the cluster layout as JSON",
		Long: `Loads the repositories (falling back to the snapshot when the API
fails or returns nothing) and prints the computed graph on the 1200x600 canvas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.catalogService(slog.Default())
			if err != nil {
				return err
			}

			catalog := svc.Load(cmd.Context())
			if catalog.Warning != "" {
				slog.Warn("using fallback data", "reason", catalog.Warning)
			}

			state := explorer.New(catalog)
			if cmd.Flags().Changed("language") {
				state = state.Select(language)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(state.Graph())
		},
	}

	cmd.Flags().StringVar(&language, "language", "", `restrict to one language ("" for unclassified)`)

	return cmd
}
