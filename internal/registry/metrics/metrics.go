package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry.
type Metrics struct {
	DomainsCreated    prometheus.Counter
	DomainTransfers   prometheus.Counter
	PrimaryDomainSets *prometheus.CounterVec
	Rejections        *prometheus.CounterVec
	OwnerCacheLookups *prometheus.CounterVec
	MutationLatency   *prometheus.HistogramVec
}

// New creates the registry metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DomainsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "inu_registry_domains_created_total",
			Help: "Total number of domains issued",
		}),
		DomainTransfers: factory.NewCounter(prometheus.CounterOpts{
			Name: "inu_registry_domain_transfers_total",
			Help: "Total number of domain ownership transfers",
		}),
		PrimaryDomainSets: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inu_registry_primary_domain_sets_total",
			Help: "Primary domain assignments by origin",
		}, []string{"origin"}), // origin: "auto", "explicit"
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inu_registry_rejected_operations_total",
			Help: "Rejected registry operations by operation and error code",
		}, []string{"operation", "code"}),
		OwnerCacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inu_registry_owner_cache_lookups_total",
			Help: "Owner cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss", "error"
		MutationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inu_registry_mutation_duration_seconds",
			Help:    "Duration of registry mutations including the transaction",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementDomainsCreated() {
	if m != nil {
		m.DomainsCreated.Inc()
	}
}

func (m *Metrics) IncrementDomainTransfers() {
	if m != nil {
		m.DomainTransfers.Inc()
	}
}

func (m *Metrics) IncrementPrimaryDomainSet(auto bool) {
	if m == nil {
		return
	}
	origin := "explicit"
	if auto {
		origin = "auto"
	}
	m.PrimaryDomainSets.WithLabelValues(origin).Inc()
}

func (m *Metrics) IncrementRejected(operation, code string) {
	if m != nil {
		m.Rejections.WithLabelValues(operation, code).Inc()
	}
}

func (m *Metrics) IncrementOwnerCacheLookup(result string) {
	if m != nil {
		m.OwnerCacheLookups.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) ObserveMutation(operation string, d time.Duration) {
	if m != nil {
		m.MutationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}
