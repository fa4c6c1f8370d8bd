package refresh

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var refreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tiltwatch_refresh_total",
	Help: "Refresh attempts by final status",
}, []string{"status"})

var reconcileOutcomeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tiltwatch_reconcile_outcome_total",
	Help: "Reconciliation outcomes by entity kind",
}, []string{"entity", "outcome"})
