package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mutation operations recorded by PersonMutations.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Search labels outside the searchable field names.
const (
	SearchNone  = "none"
	SearchOther = "other"
)

// Metrics provides observability for the person module.
type Metrics struct {
	// Successful writes by operation
	PersonMutations *prometheus.CounterVec

	// Index searches by field ("none" when unfiltered, "other" for unknown fields)
	Searches *prometheus.CounterVec

	// Filter + sort latency on the index path
	IndexDuration prometheus.Histogram
}

// New registers person metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PersonMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "persons_person_mutations_total",
			Help: "Total successful person writes by operation",
		}, []string{"op"}),
		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "persons_person_searches_total",
			Help: "Total person index searches by field",
		}, []string{"field"}),
		IndexDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "persons_person_index_duration_seconds",
			Help:    "Duration of filtered person listings",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncMutation(op string) {
	m.PersonMutations.WithLabelValues(op).Inc()
}

// IncSearch counts an index search. Callers pass a known field name,
// SearchNone or SearchOther so the label set stays bounded.
func (m *Metrics) IncSearch(field string) {
	if field == "" {
		field = SearchNone
	}
	m.Searches.WithLabelValues(field).Inc()
}

// ObserveIndex records the duration of a listing.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveIndex(start time.Time) {
	m.IndexDuration.Observe(time.Since(start).Seconds())
}
