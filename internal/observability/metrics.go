package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesCreated counts messages accepted by the content store.
	MessagesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_messages_created_total",
		Help: "Total number of messages created",
	})

	// MessagesDeleted counts author-initiated message deletions.
	MessagesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_messages_deleted_total",
		Help: "Total number of messages deleted",
	})

	// EdgeMutations counts relationship edge changes by edge type and action.
	EdgeMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_edge_mutations_total",
		Help: "Total follow/block/like edge mutations by type and action",
	}, []string{"edge", "action"})

	// AuthorizationDenials counts gate denials by rule.
	AuthorizationDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_authorization_denials_total",
		Help: "Total authorization gate denials by rule",
	}, []string{"rule"})

	// WebSocketConnections is the gauge of active timeline connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chirp_websocket_connections",
		Help: "Number of active WebSocket timeline connections",
	})

	// WebSocketEventsTotal counts timeline events delivered by type.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_websocket_events_total",
		Help: "Total WebSocket timeline events by type",
	}, []string{"event_type"})

	// WebSocketBackpressureDrops counts messages dropped because a client's
	// send buffer was full or closed.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_websocket_backpressure_drops_total",
		Help: "Total WebSocket messages dropped due to backpressure",
	}, []string{"reason"})
)
