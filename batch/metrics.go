package batch

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Job outcome labels for the jobs counter.
const (
	StatusOK       = "ok"
	StatusFailed   = "failed"
	StatusCanceled = "canceled"
)

// Metrics are the Prometheus collectors a Runner updates.
type Metrics struct {
	// Jobs counts finished jobs by status.
	Jobs *prometheus.CounterVec
	// Clusters counts clusters found across all successful jobs.
	Clusters prometheus.Counter
	// Duration observes per-job wall time in seconds.
	Duration prometheus.Histogram
}

func newMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Jobs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "batch",
				Name:      "jobs_total",
				Help:      "Finished cluster-finding jobs by status.",
			},
			[]string{"status"},
		),
		Clusters: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "batch",
				Name:      "clusters_total",
				Help:      "Clusters found by successful jobs.",
			},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "batch",
				Name:      "job_duration_seconds",
				Help:      "Cluster-finding job duration in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
		),
	}
	for _, c := range []prometheus.Collector{m.Jobs, m.Clusters, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}
