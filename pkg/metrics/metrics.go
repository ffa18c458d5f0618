package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Probe metrics
	ProbeAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wakegrid_probe_attempts_total",
			Help: "Total number of probe attempts by node, check type and outcome",
		},
		[]string{"node", "type", "outcome"},
	)

	ProbeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wakegrid_probe_duration_seconds",
			Help:    "Duration of individual probe attempts",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"node", "type"},
	)

	// Check metrics
	ChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wakegrid_checks_total",
			Help: "Total number of completed health checks by terminal status",
		},
		[]string{"node", "status"},
	)

	// Node metrics
	NodesTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wakegrid_nodes_total",
			Help: "Number of nodes by current status",
		},
		[]string{"status"},
	)

	WakePacketsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wakegrid_wake_packets_total",
			Help: "Total number of wake-on-LAN packets sent",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ProbeAttemptsTotal,
		ProbeDuration,
		ChecksTotal,
		NodesTotal,
		WakePacketsTotal,
	)
}

// Handler returns the HTTP handler exposing the metrics registry.
// Whether it is served at all is the CLI's decision.
func Handler() http.Handler {
	return promhttp.Handler()
}
