package lifecycle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeApplied       = "applied"
	outcomeInvalid       = "invalid_transition"
	outcomeBadInput      = "bad_input"
	outcomePersistFailed = "persist_failed"
)

var transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
	Namespace: "vetclinic",
	Subsystem: "appointment",
	Name:      "transitions_total",
	Help:      "Appointment transition attempts by action, source status and outcome",
}, []string{"action", "from", "outcome"})
