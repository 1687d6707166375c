// Package metrics exposes Prometheus metrics for the VLAN registry.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"evalgo.org/vlanreg/models"
)

// Create results recorded by RecordCreate.
const (
	ResultCreated      = "created"
	ResultConflict     = "conflict"
	ResultOutOfRange   = "out_of_range"
	ResultInvalid      = "invalid"
	ResultInternalFail = "error"
)

// Registry holds all vlanreg metrics.
type Registry struct {
	gatherer prometheus.Gatherer

	// Registry metrics
	VLANsTotal   prometheus.GaugeFunc
	CreatesTotal *prometheus.CounterVec
	LastCreated  prometheus.Gauge

	// API metrics
	APIRequests *prometheus.CounterVec
	APILatency  *prometheus.HistogramVec
}

// New registers the vlanreg collectors on a fresh Prometheus registry,
// together with the Go runtime and process collectors. vlanCount is read on
// every scrape, so the VLAN total always matches the registry.
func New(vlanCount func() int) *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)
	r := &Registry{gatherer: reg}

	r.VLANsTotal = f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "vlanreg_vlans_total",
		Help: "Number of registered VLANs",
	}, func() float64 { return float64(vlanCount()) })

	r.CreatesTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "vlanreg_vlan_creates_total",
		Help: "VLAN create attempts by result",
	}, []string{"result"})

	r.LastCreated = f.NewGauge(prometheus.GaugeOpts{
		Name: "vlanreg_last_created_vlan_id",
		Help: "ID of the most recently registered VLAN",
	})

	r.APIRequests = f.NewCounterVec(prometheus.CounterOpts{
		Name: "vlanreg_api_requests_total",
		Help: "Total API requests",
	}, []string{"method", "path", "status"})

	r.APILatency = f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vlanreg_api_request_duration_seconds",
		Help:    "API request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	return r
}

// ObserveCreated is a registry listener recording the latest VLAN ID.
func (r *Registry) ObserveCreated(vlan models.VLAN, _ int) {
	r.LastCreated.Set(float64(vlan.ID))
}

// RecordCreate counts a create attempt.
func (r *Registry) RecordCreate(result string) {
	r.CreatesTotal.WithLabelValues(result).Inc()
}

// RecordAPIRequest records an API request.
func (r *Registry) RecordAPIRequest(method, path string, status int, duration float64) {
	r.APIRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.APILatency.WithLabelValues(method, path).Observe(duration)
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
