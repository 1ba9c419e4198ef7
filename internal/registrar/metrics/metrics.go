package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for registrars and their subdomains.
type Metrics struct {
	RegistrarsDeployed *prometheus.CounterVec
	SubdomainsCreated  prometheus.Counter
	SubdomainTransfers *prometheus.CounterVec
	ProfileUpdates     *prometheus.CounterVec
	Rejections         *prometheus.CounterVec
	MutationLatency    *prometheus.HistogramVec
}

// New creates the registrar metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrarsDeployed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inu_registrar_deployed_total",
			Help: "Registrars deployed by origin",
		}, []string{"origin"}), // origin: "provisioned", "explicit"
		SubdomainsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "inu_registrar_subdomains_created_total",
			Help: "Total number of subdomains created",
		}),
		SubdomainTransfers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inu_registrar_subdomain_transfers_total",
			Help: "Subdomain transfers by kind",
		}, []string{"kind"}), // kind: "delegated", "redelegated", "reclaimed"
		ProfileUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inu_registrar_profile_updates_total",
			Help: "Owner info and subdomain data updates",
		}, []string{"target"}), // target: "owner_info", "subdomain"
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inu_registrar_rejected_operations_total",
			Help: "Rejected registrar operations by operation and error code",
		}, []string{"operation", "code"}),
		MutationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inu_registrar_mutation_duration_seconds",
			Help:    "Duration of registrar mutations including the transaction",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementDeployed(origin string) {
	if m != nil {
		m.RegistrarsDeployed.WithLabelValues(origin).Inc()
	}
}

func (m *Metrics) IncrementSubdomainsCreated() {
	if m != nil {
		m.SubdomainsCreated.Inc()
	}
}

func (m *Metrics) IncrementTransfer(kind string) {
	if m != nil {
		m.SubdomainTransfers.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncrementProfileUpdate(target string) {
	if m != nil {
		m.ProfileUpdates.WithLabelValues(target).Inc()
	}
}

func (m *Metrics) IncrementRejected(operation, code string) {
	if m != nil {
		m.Rejections.WithLabelValues(operation, code).Inc()
	}
}

func (m *Metrics) ObserveMutation(operation string, d time.Duration) {
	if m != nil {
		m.MutationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}
