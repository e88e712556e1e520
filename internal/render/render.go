// Package render draws the dashboard charts as PNG images.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"launchdash/internal/models"
)

// Default chart dimensions in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 480
)

// palette colours booster categories in first-seen order.
var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorCyan,
	chart.ColorAlternateGray,
	chart.ColorYellow,
}

// Renderer turns chart series into PNG bytes.
type Renderer struct {
	Width  int
	Height int
	logger *slog.Logger
}

// New creates a renderer with the default size.
func New(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{Width: DefaultWidth, Height: DefaultHeight, logger: logger}
}

// PieTitle returns the pie chart title for a site selector.
func PieTitle(site string) string {
	if site == models.SiteAll {
		return "Total successful launches count for all sites"
	}
	return "Total Success(1) vs. Failed(0) launches count for site " + site
}

// ScatterTitle returns the scatter chart title for a site selector.
func ScatterTitle(site string) string {
	if site == models.SiteAll {
		return "Correlation between Payload and Success for all Sites"
	}
	return "Correlation between Payload and Success for site " + site
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    5,
		DotColor:    col,
	}
}

// Pie renders the success breakdown. Zero slices are dropped; an empty
// series renders a blank image.
func (r *Renderer) Pie(sel models.Selection, series models.PieSeries) ([]byte, error) {
	values := make([]chart.Value, 0, len(series))
	for _, s := range series {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", s.Label, s.Value),
			Value: float64(s.Value),
		})
	}
	if len(values) == 0 {
		return r.blank()
	}

	pie := chart.PieChart{
		Title:  PieTitle(sel.Site),
		Width:  r.Width,
		Height: r.Height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		r.logger.Warn("pie chart render failed, using blank fallback", "site", sel.Site, "error", err)
		return r.blank()
	}
	return buf.Bytes(), nil
}

// Scatter renders payload against outcome, one point series per booster
// category. The x axis spans the selected payload range.
func (r *Renderer) Scatter(sel models.Selection, series models.ScatterSeries) ([]byte, error) {
	if len(series) == 0 {
		return r.blank()
	}

	byCategory := make(map[string]*chart.ContinuousSeries)
	var ordered []chart.Series
	for _, cat := range series.Categories() {
		s := &chart.ContinuousSeries{
			Name:  cat,
			Style: pointStyle(palette[len(ordered)%len(palette)]),
		}
		byCategory[cat] = s
		ordered = append(ordered, s)
	}
	for _, p := range series {
		s := byCategory[p.BoosterVersionCategory]
		s.XValues = append(s.XValues, p.PayloadMassKg)
		s.YValues = append(s.YValues, float64(p.Class))
	}

	lo, hi := sel.PayloadRange.Low, sel.PayloadRange.High
	if hi <= lo {
		hi = lo + 1
	}

	graph := chart.Chart{
		Title:      ScatterTitle(sel.Site),
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Payload Mass (kg)",
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		YAxis: chart.YAxis{
			Name:  "class",
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}},
		},
		Series: ordered,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		r.logger.Warn("scatter chart render failed, using blank fallback", "site", sel.Site, "error", err)
		return r.blank()
	}
	return buf.Bytes(), nil
}

// blank returns a white placeholder so the dashboard still shows an empty chart.
func (r *Renderer) blank() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
