package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	githubadapter "github.com/ericfisherdev/hypergraph/internal/adapter/driven/github"
	"github.com/ericfisherdev/hypergraph/internal/adapter/driven/snapshot"
	"github.com/ericfisherdev/hypergraph/internal/application"
	"github.com/ericfisherdev/hypergraph/internal/config"
)

var version = "0.1.0"

// options are the flags shared by every subcommand.
type options struct {
	org          string
	token        string
	timeout      time.Duration
	snapshotPath string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "hypergraphctl",
		Short: "Explore a GitHub organization's repositories by language",
		Long: `hypergraphctl lists a GitHub organization's repositories, computes the
language cluster layout used by the hypergraph server and browses both in
the terminal.

Defaults come from the HYPERGRAPH_* environment variables.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.applyConfig(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.org, "org", "", "GitHub organization (default $HYPERGRAPH_ORG or cogpy)")
	flags.StringVar(&opts.token, "token", "", "GitHub token (default $HYPERGRAPH_GITHUB_TOKEN)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (default $HYPERGRAPH_REQUEST_TIMEOUT or 15s)")
	flags.StringVar(&opts.snapshotPath, "snapshot", "", "fallback snapshot YAML (default embedded)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log API calls to stderr")

	cmd.AddCommand(newFetchCmd(opts))
	cmd.AddCommand(newLayoutCmd(opts))
	cmd.AddCommand(newBrowseCmd(opts))

	return cmd
}

// applyConfig fills unset flags from the environment configuration and
// installs the default logger.
func (o *options) applyConfig(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("org") {
		o.org = cfg.Organization
	}
	if !cmd.Flags().Changed("token") {
		o.token = cfg.GitHubToken
	}
	if !cmd.Flags().Changed("timeout") {
		o.timeout = cfg.RequestTimeout
	}
	if !cmd.Flags().Changed("snapshot") {
		o.snapshotPath = cfg.SnapshotPath
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// lister returns a GitHub client logging through logger.
func (o *options) lister(logger *slog.Logger) *githubadapter.Client {
	return githubadapter.NewClient(o.timeout, logger)
}

// catalogService returns a catalog service that falls back to the snapshot.
// Fetch history is not recorded by the CLI.
func (o *options) catalogService(logger *slog.Logger) (*application.CatalogService, error) {
	snap, err := snapshot.Load(o.snapshotPath)
	if err != nil {
		return nil, err
	}
	fallback, ok := snap.For(o.org)
	if !ok {
		logger.Warn("snapshot describes a different organization, no fallback data",
			"snapshot_org", snap.Organization,
			"org", o.org,
		)
	}

	return application.NewCatalogService(o.lister(logger), nil, o.org, o.token, fallback, 0), nil
}

// quietLogger discards everything; used while the terminal UI owns the screen.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
