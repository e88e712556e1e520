package models

// PieSlice is one labelled value of a pie chart.
type PieSlice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// PieSeries is the success breakdown for a selection.
type PieSeries []PieSlice

// Total returns the sum of all slice values.
func (p PieSeries) Total() int {
	total := 0
	for _, s := range p {
		total += s.Value
	}
	return total
}

// ScatterPoint is one launch plotted by payload against outcome.
type ScatterPoint struct {
	PayloadMassKg          float64 `json:"payload_mass_kg"`
	Class                  int     `json:"class"`
	BoosterVersionCategory string  `json:"booster_version_category"`
}

// ScatterSeries is the payload-vs-outcome point set for a selection.
type ScatterSeries []ScatterPoint

// Categories returns the distinct booster version categories in first-seen order.
func (s ScatterSeries) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, p := range s {
		if !seen[p.BoosterVersionCategory] {
			seen[p.BoosterVersionCategory] = true
			cats = append(cats, p.BoosterVersionCategory)
		}
	}
	return cats
}
