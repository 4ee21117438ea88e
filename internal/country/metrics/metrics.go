package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the country module.
type Metrics struct {
	CountriesCreated prometheus.Counter
	ListDuration     prometheus.Histogram
}

// New registers country metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CountriesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "persons_countries_created_total",
			Help: "Total number of countries created",
		}),
		ListDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "persons_countries_list_duration_seconds",
			Help:    "Duration of ListCountries operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementCountryCreated records a successful country creation.
func (m *Metrics) IncrementCountryCreated() {
	m.CountriesCreated.Inc()
}

// ObserveList records the duration of a ListCountries call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveList(start time.Time) {
	m.ListDuration.Observe(time.Since(start).Seconds())
}
