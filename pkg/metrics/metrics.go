package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	JobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "papers", Name: "jobs_total", Help: "Number of jobs by operation and outcome."},
		[]string{"operation", "outcome"},
	)
	JobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "papers", Name: "job_duration_seconds", Help: "Job duration in seconds by operation.", Buckets: prometheus.DefBuckets},
		[]string{"operation"},
	)
	AssetDownloadBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "papers", Name: "asset_download_bytes_total", Help: "Total bytes downloaded for job assets."},
		[]string{"operation"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(JobsTotal)
	reg.MustRegister(JobDuration)
	reg.MustRegister(AssetDownloadBytes)
}

// JobStarted returns the current time for the caller to pass to
// ObserveDuration once the job completes.
func JobStarted(operation string) time.Time {
	return time.Now()
}

// JobFinished increments the outcome counter for operation/outcome.
func JobFinished(operation, outcome string) {
	JobsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveDuration records the duration of a single job.
func ObserveDuration(operation string, d time.Duration) {
	JobDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// AddAssetBytes accumulates downloaded asset bytes for operation.
func AddAssetBytes(operation string, n float64) {
	AssetDownloadBytes.WithLabelValues(operation).Add(n)
}
