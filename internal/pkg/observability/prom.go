package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "mediawatch"
)

var (
	LeaderboardComputeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "leaderboard", "compute_duration_seconds"),
		Help:    "Duration of leaderboard computation (including data fetch) in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{"group_by"})
	LetterGenerateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "letter", "generate_duration_seconds"),
		Help:    "Duration of complaint letter generation in seconds",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
	}, []string{"result"})
	DispatchConsumeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "dispatch", "consume_duration_seconds"),
		Help:    "Duration of complaint dispatch consumption in seconds",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{})
	DispatchConsumeMessagingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "dispatch", "consume_messaging_latency_seconds"),
		Help:    "Messaging latency between queueing and consuming a complaint dispatch in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{})
	DispatchOutcome = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "dispatch", "outcome_total"),
		Help: "Outcomes of complaint dispatch tasks",
	}, []string{"outcome"})
)
