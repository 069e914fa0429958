package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hub_generation_requests_total",
		Help: "Content generation requests by kind and outcome",
	}, []string{"kind", "outcome"})

	mentorExchanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hub_mentor_exchanges_total",
		Help: "Completed mentor chat exchanges",
	})

	milestoneCompletions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hub_milestone_completions_total",
		Help: "Roadmap milestone completions",
	})
)

func recordGeneration(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	generationRequests.WithLabelValues(kind, outcome).Inc()
}
