package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "santa_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "santa_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
	roomsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "santa_rooms_created_total",
		Help: "Total number of rooms created",
	})
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, roomsCreatedTotal)
}

// CountRoomCreated increments the room-creation counter. Called by the
// controller on successful creates.
func CountRoomCreated() {
	roomsCreatedTotal.Inc()
}

// routeLabel collapses a request path to its route shape. Label cardinality
// must stay bounded: room codes, secret keys, and participant names never
// become label values, and unmatched paths share a single bucket.
func routeLabel(path string) string {
	switch {
	case path == "/rooms":
		return "/rooms"
	case path == "/metrics":
		return "/metrics"
	case strings.HasPrefix(path, "/swagger/"):
		return "/swagger"
	case strings.HasPrefix(path, "/reveal/creator/"):
		return "/reveal/creator/{key}"
	case strings.HasPrefix(path, "/reveal/participant/"):
		return "/reveal/participant/{key}"
	case strings.HasPrefix(path, "/rooms/"):
		rest := path[len("/rooms/"):]
		if rest != "" && !strings.Contains(rest, "/") {
			return "/rooms/{code}"
		}
		if strings.Contains(rest, "/participants/") && strings.HasSuffix(rest, "/qr") {
			return "/rooms/{code}/participants/{name}/qr"
		}
		return "other"
	default:
		return "other"
	}
}

// Metrics records request count and duration per method/route/status.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		labels := prometheus.Labels{
			"method": r.Method,
			"path":   routeLabel(r.URL.Path),
			"status": strconv.Itoa(wrapped.status),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	})
}
