// Package format renders chart series as terminal or Markdown tables.
package format

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"launchdash/internal/models"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

func newWriter(m Mode) table.Writer {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return w
}

func render(w table.Writer, m Mode) string {
	if m == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

// PieTable renders a pie series with a share column and a total footer.
func PieTable(m Mode, series models.PieSeries) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"Label", "Value", "Share"})

	total := series.Total()
	for _, s := range series {
		w.AppendRow(table.Row{s.Label, s.Value, share(s.Value, total)})
	}
	w.AppendFooter(table.Row{"Total", total, ""})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return render(w, m)
}

// ScatterTable renders a scatter series, one row per point.
func ScatterTable(m Mode, series models.ScatterSeries) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"Payload Mass (kg)", "Class", "Booster Version Category"})
	for _, p := range series {
		w.AppendRow(table.Row{strconv.FormatFloat(p.PayloadMassKg, 'f', -1, 64), p.Class, p.BoosterVersionCategory})
	}
	w.AppendFooter(table.Row{"Points", len(series), ""})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignCenter},
	})
	return render(w, m)
}

// SiteRow is one line of the site overview.
type SiteRow struct {
	Site      string
	Launches  int
	Successes int
}

// SitesTable renders per-site launch and success counts.
func SitesTable(m Mode, rows []SiteRow) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"Site", "Launches", "Successes", "Success Rate"})
	launches, successes := 0, 0
	for _, r := range rows {
		w.AppendRow(table.Row{r.Site, r.Launches, r.Successes, share(r.Successes, r.Launches)})
		launches += r.Launches
		successes += r.Successes
	}
	w.AppendFooter(table.Row{"Total", launches, successes, share(successes, launches)})
	return render(w, m)
}

func share(part, total int) string {
	if total == 0 {
		return "-"
	}
	return strconv.FormatFloat(100*float64(part)/float64(total), 'f', 1, 64) + "%"
}
