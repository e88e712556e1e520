package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"launchdash/internal/analytics"
	"launchdash/internal/controller"
	"launchdash/internal/format"
	"launchdash/internal/logging"
	"launchdash/internal/render"
	"launchdash/internal/validation"
)

var summaryFlags struct {
	dataset          string
	site             string
	low              string
	high             string
	markdown         bool
	piePayloadFilter bool
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the pie and scatter series for a selection",
	RunE:  runSummary,
}

func init() {
	f := summaryCmd.Flags()
	f.StringVar(&summaryFlags.dataset, "dataset", "spacex_launch_dash.csv", "Path to the launch records CSV")
	f.StringVar(&summaryFlags.site, "site", "", "Launch site, or ALL (default ALL)")
	f.StringVar(&summaryFlags.low, "low", "", "Lower payload bound in kg")
	f.StringVar(&summaryFlags.high, "high", "", "Upper payload bound in kg")
	f.BoolVar(&summaryFlags.markdown, "markdown", false, "Print Markdown tables")
	f.BoolVar(&summaryFlags.piePayloadFilter, "pie-payload-filter", false, "Apply the payload range to the pie series too")
}

func runSummary(cmd *cobra.Command, _ []string) error {
	store, err := loadStore(summaryFlags.dataset)
	if err != nil {
		return err
	}

	update, err := validation.ParseSelectionUpdate(summaryFlags.site, summaryFlags.low, summaryFlags.high)
	if err != nil {
		return fmt.Errorf("invalid selection: %w", err)
	}

	producer := analytics.NewProducer(store, analytics.WithPiePayloadFilter(summaryFlags.piePayloadFilter))
	ctrl, err := controller.New(producer, logging.New("controller"))
	if err != nil {
		return err
	}
	snap, err := ctrl.OnSelectionChanged(update)
	if err != nil {
		return fmt.Errorf("invalid selection: %w", err)
	}

	mode := tableMode(summaryFlags.markdown)
	sel := snap.Selection
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Site:    %s\n", sel.Site)
	fmt.Fprintf(out, "Payload: %g - %g kg\n\n", sel.PayloadRange.Low, sel.PayloadRange.High)
	fmt.Fprintln(out, render.PieTitle(sel.Site))
	fmt.Fprintln(out, format.PieTable(mode, snap.Pie))
	fmt.Fprintln(out)
	fmt.Fprintln(out, render.ScatterTitle(sel.Site))
	fmt.Fprintln(out, format.ScatterTable(mode, snap.Scatter))
	return nil
}
