package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/hypergraph/internal/domain/layout"
	"github.com/ericfisherdev/hypergraph/internal/domain/model"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func newFetchCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "List the organization's repositories from the GitHub API",
		Long: `Lists every repository of the organization (up to 20 pages of 100).
Unlike the server, fetch never falls back to the snapshot: any API error is
reported and the command fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listing, err := opts.lister(slog.Default()).ListOrgRepositories(cmd.Context(), opts.org, opts.token)
			if err != nil {
				return err
			}

			if asJSON {
				return writeListingJSON(cmd.OutOrStdout(), listing)
			}
			return writeListingTable(cmd.OutOrStdout(), listing)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

type listingJSON struct {
	Organization string             `json:"organization"`
	Pages        int                `json:"pages"`
	Truncated    bool               `json:"truncated"`
	Count        int                `json:"count"`
	Repositories []model.Repository `json:"repositories"`
}

func writeListingJSON(w io.Writer, listing *model.RepositoryListing) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(listingJSON{
		Organization: listing.Organization,
		Pages:        listing.Pages,
		Truncated:    listing.Truncated,
		Count:        len(listing.Repositories),
		Repositories: listing.Repositories,
	})
}

func writeListingTable(w io.Writer, listing *model.RepositoryListing) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "LANGUAGE", "STARS", "FORKS", "VISIBILITY").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, repo := range listing.Repositories {
		t.Row(
			repo.Name,
			layout.DisplayName(repo.Language),
			humanize.Comma(int64(repo.Stars)),
			strconv.Itoa(repo.Forks),
			string(repo.Visibility),
		)
	}

	summary := fmt.Sprintf("%d repositories in %s (%d pages)", len(listing.Repositories), listing.Organization, listing.Pages)
	if listing.Truncated {
		summary += ", truncated at the page limit"
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n", t.Render(), summary)
	return err
}
