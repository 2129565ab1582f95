// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	QuotesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotes_generated_total",
			Help: "Total number of quotes generated",
		},
		[]string{"insurance_type", "provider"},
	)

	RecommendationsProduced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_produced_total",
			Help: "Total number of quote recommendations produced",
		},
		[]string{"provider"},
	)

	RepresentativeAssignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "representative_assignments_total",
			Help: "Total number of representative assignments",
		},
		[]string{"representative_id", "specialized"},
	)

	InterestRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_interest_records_total",
			Help: "Total number of quote interest records persisted",
		},
		[]string{"status"},
	)
)
