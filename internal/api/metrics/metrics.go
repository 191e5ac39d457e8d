// Package metrics defines the custom Prometheus metrics of the decision
// service. It is the single source of truth for metric names, labels and help
// strings. All collectors register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "decisions"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logout requests, including those without a session.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout requests.",
	},
)

// ── Decision metrics ──────────────────────────────────────────────────────────

// DecisionsCreatedTotal counts newly created decisions.
// Label:
//   - tipo: role of the creating session ("admin" or "normal")
var DecisionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of decisions created, by role.",
	},
	[]string{"tipo"},
)

// DecisionsUpdatedTotal counts successful field edits.
// Label:
//   - field: "texto", "resultado" or "exito"
var DecisionsUpdatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "updated_total",
		Help:      "Total number of decision field updates, by field.",
	},
	[]string{"field"},
)

// DecisionsDeletedTotal counts delete requests.
// Label:
//   - result: "deleted" or "not_found"
var DecisionsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deleted_total",
		Help:      "Total number of decision delete requests, by result.",
	},
	[]string{"result"},
)
