package analytics

import (
	"launchdash/internal/dataset"
	"launchdash/internal/models"
)

// Producer builds chart series from a store. It holds no mutable state.
type Producer struct {
	store            *dataset.Store
	piePayloadFilter bool
}

// Option configures a Producer.
type Option func(*Producer)

// WithPiePayloadFilter makes the pie series honour the payload range as well as
// the site. By default the pie ignores the payload range.
func WithPiePayloadFilter(enabled bool) Option {
	return func(p *Producer) {
		p.piePayloadFilter = enabled
	}
}

// NewProducer creates a producer over store.
func NewProducer(store *dataset.Store, opts ...Option) *Producer {
	p := &Producer{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Store returns the underlying record store.
func (p *Producer) Store() *dataset.Store {
	return p.store
}

// Pie returns the success breakdown for sel.
func (p *Producer) Pie(sel models.Selection) (models.PieSeries, error) {
	records := p.store.AllRecords()
	if p.piePayloadFilter {
		var err error
		records, err = FilterPayloadRange(records, sel.PayloadRange)
		if err != nil {
			return nil, err
		}
	}
	return Aggregate(records, sel.Site), nil
}

// Scatter returns the payload-vs-outcome points for sel in store order.
func (p *Producer) Scatter(sel models.Selection) (models.ScatterSeries, error) {
	records, err := FilterPayloadRange(FilterSite(p.store.AllRecords(), sel.Site), sel.PayloadRange)
	if err != nil {
		return nil, err
	}

	series := make(models.ScatterSeries, 0, len(records))
	for _, r := range records {
		series = append(series, models.ScatterPoint{
			PayloadMassKg:          r.PayloadMassKg,
			Class:                  r.Class,
			BoosterVersionCategory: r.BoosterVersionCategory,
		})
	}
	return series, nil
}

// Produce computes both series. Either both succeed or neither is returned.
func (p *Producer) Produce(sel models.Selection) (models.PieSeries, models.ScatterSeries, error) {
	pie, err := p.Pie(sel)
	if err != nil {
		return nil, nil, err
	}
	scatter, err := p.Scatter(sel)
	if err != nil {
		return nil, nil, err
	}
	return pie, scatter, nil
}
