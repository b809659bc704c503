package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	GamesRecorded       prometheus.Counter
	StatsComputed       prometheus.Counter
	AggregationDuration prometheus.Histogram
	ChartsRendered      *prometheus.CounterVec
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
