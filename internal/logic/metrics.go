package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	picksAggregated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adp_picks_aggregated_total",
		Help: "Draft picks that contributed to an aggregation",
	})

	picksSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adp_picks_skipped_total",
		Help: "Draft picks dropped for missing pick_no, round or draft_slot",
	})

	leagueOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adp_league_resolutions_total",
		Help: "League draft resolutions by outcome (ok, no_draft, mismatch)",
	}, []string{"outcome"})

	aggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "adp_group_aggregation_duration_seconds",
		Help:    "End to end duration of aggregating one league group",
		Buckets: prometheus.DefBuckets,
	})
)
