package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// WebSocket specific metrics
	wsConnectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_connections_total",
			Help: "Total number of WebSocket connections",
		},
	)

	wsActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	// =========================================================================
	// Business Metrics
	// =========================================================================

	eventsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_events_created_total",
			Help: "Total number of events created",
		},
	)

	invitationsSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_invitations_sent_total",
			Help: "Total number of invitations sent",
		},
	)

	invitationsAcceptedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_invitations_accepted_total",
			Help: "Total number of invitations accepted",
		},
	)

	messagesSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_messages_sent_total",
			Help: "Total number of chat messages sent",
		},
	)

	presenceSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "planner_presence_sessions_active",
			Help: "Number of active presence sessions",
		},
	)

	rateLimitRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// MetricsMiddleware returns a Gin middleware that collects Prometheus metrics
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpRequestsInFlight.Inc()

		c.Next()

		httpRequestsInFlight.Dec()
		duration := time.Since(start).Seconds()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// MetricsHandler returns the Prometheus metrics handler for Gin
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordWebSocketConnection increments WebSocket connection counters
func RecordWebSocketConnection() {
	wsConnectionsTotal.Inc()
	wsActiveConnections.Inc()
}

// RecordWebSocketDisconnection decrements active WebSocket connection gauge
func RecordWebSocketDisconnection() {
	wsActiveConnections.Dec()
}

// =============================================================================
// Business Metrics Helper Functions
// =============================================================================

// RecordEventCreated increments the event creation counter
func RecordEventCreated() {
	eventsCreatedTotal.Inc()
}

// RecordInvitationSent increments the invitation counter
func RecordInvitationSent() {
	invitationsSentTotal.Inc()
}

// RecordInvitationAccepted increments the accepted invitation counter
func RecordInvitationAccepted() {
	invitationsAcceptedTotal.Inc()
}

// RecordMessageSent increments the chat message counter
func RecordMessageSent() {
	messagesSentTotal.Inc()
}

// SetActivePresenceSessions sets the active presence session gauge
func SetActivePresenceSessions(count float64) {
	presenceSessionsActive.Set(count)
}

// RecordRateLimitRejection increments the rate limit rejection counter
func RecordRateLimitRejection() {
	rateLimitRejectionsTotal.Inc()
}
