package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"launchdash/internal/format"
)

var sitesFlags struct {
	dataset  string
	markdown bool
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List launch sites with launch and success counts",
	RunE:  runSites,
}

func init() {
	f := sitesCmd.Flags()
	f.StringVar(&sitesFlags.dataset, "dataset", "spacex_launch_dash.csv", "Path to the launch records CSV")
	f.BoolVar(&sitesFlags.markdown, "markdown", false, "Print a Markdown table")
}

func runSites(cmd *cobra.Command, _ []string) error {
	store, err := loadStore(sitesFlags.dataset)
	if err != nil {
		return err
	}

	var rows []format.SiteRow
	for _, site := range store.KnownSites() {
		rows = append(rows, format.SiteRow{
			Site:      site,
			Launches:  store.SiteCount(site),
			Successes: store.SuccessCount(site),
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), format.SitesTable(tableMode(sitesFlags.markdown), rows))
	return nil
}
