package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var Estimations *prometheus.CounterVec = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ghcost_estimations_total",
	Help: "Number of plan estimations served, by outcome (recommended, no_plan, invalid, error)",
}, []string{"outcome"})

var Recommendations *prometheus.CounterVec = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ghcost_recommendations_total",
	Help: "Number of times each plan was recommended as the cheapest supportable plan",
}, []string{"plan"})

var IneligiblePlans *prometheus.CounterVec = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ghcost_ineligible_plans_total",
	Help: "Number of evaluations in which a plan could not support the declared usage",
}, []string{"plan"})

var EstimateDuration prometheus.Histogram = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "ghcost_estimate_duration_seconds",
	Help:    "Time spent aggregating, evaluating and selecting plans for one estimation",
	Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
})
