package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	collaboratorRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "diametrics",
		Subsystem: "collaborator",
		Name:      "requests_total",
		Help:      "Calls made to remote collaborators, by service, operation and outcome.",
	}, []string{"service", "operation", "outcome"})
	collaboratorLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "diametrics",
		Subsystem: "collaborator",
		Name:      "request_duration_seconds",
		Help:      "Latency of remote collaborator calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service"})
	loaderRefreshes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "diametrics",
		Subsystem: "loader",
		Name:      "refresh_total",
		Help:      "Full data reloads, by outcome.",
	}, []string{"outcome"})
	renderLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "diametrics",
		Subsystem: "view",
		Name:      "render_duration_seconds",
		Help:      "Time to build and execute a dashboard page, by active tab.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
	}, []string{"tab"})
)

func init() {
	prometheus.MustRegister(collaboratorRequests, collaboratorLatency, loaderRefreshes, renderLatency)
}

// ObserveCall records one collaborator call that started at start.
func ObserveCall(service, operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	collaboratorRequests.WithLabelValues(service, operation, outcome).Inc()
	collaboratorLatency.WithLabelValues(service).Observe(time.Since(start).Seconds())
}

// RecordRefresh counts a loader run. Outcome is "ok", "unauthenticated" or "error".
func RecordRefresh(outcome string) {
	loaderRefreshes.WithLabelValues(outcome).Inc()
}

func ObserveRender(tab string, start time.Time) {
	renderLatency.WithLabelValues(tab).Observe(time.Since(start).Seconds())
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
