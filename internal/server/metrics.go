package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analyzeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prepmate_analyze_total",
		Help: "Resume analyses by outcome",
	}, []string{"outcome"})

	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prepmate_turns_total",
		Help: "Interview turns generated by outcome",
	}, []string{"outcome"})

	scoresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prepmate_scores_total",
		Help: "Scoring requests by outcome",
	}, []string{"outcome"})

	modelLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "prepmate_turn_duration_seconds",
		Help:    "Wall time of a full next-question turn",
		Buckets: prometheus.DefBuckets,
	})
)
