// Package metrics defines and registers all custom Prometheus metrics for
// the tracking API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracking"

// ── Realtime hub metrics ──────────────────────────────────────────────────────

// WSConnections tracks the number of currently connected realtime sessions.
var WSConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections",
		Help:      "Current number of connected realtime sessions.",
	},
)

// LocationUpdatesTotal counts accepted inbound location_update events.
var LocationUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "location_updates_total",
		Help:      "Total number of location_update events accepted by the hub.",
	},
)

// BroadcastsTotal counts frames fanned out to the connected set.
var BroadcastsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcasts_total",
		Help:      "Total number of frames broadcast to all connected sessions.",
	},
)

// LaggingSessionsTotal counts sessions disconnected because their send
// buffer overflowed.
var LaggingSessionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lagging_sessions_total",
		Help:      "Total number of sessions disconnected for lagging behind the broadcast.",
	},
)

// ── Location persistence metrics ──────────────────────────────────────────────

// SamplesDroppedTotal counts location samples dropped because the
// persistence queue was full. Broadcast delivery is unaffected.
var SamplesDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "location_samples_dropped_total",
		Help:      "Total number of location samples dropped at enqueue time.",
	},
)

// QueueDepth tracks the number of samples waiting in each dispatcher worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var QueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "location_queue_depth",
		Help:      "Current number of location samples pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrderTransitionsTotal counts successful order status transitions.
// Label:
//   - status: the new order status ("in_progress", "completed")
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of successful order status transitions, by resulting status.",
	},
	[]string{"status"},
)
