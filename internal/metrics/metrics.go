package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turkmvc/satmad/internal/tle"
)

// Build sources, used as the "source" label of satmad_tle_built_total.
const (
	SourceLines    = "lines"
	SourceElements = "elements"
	SourceGeo      = "geo"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "satmad_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "satmad_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	tleBuiltTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "satmad_tle_built_total",
			Help: "Element sets built, by construction path and outcome.",
		},
		[]string{"source", "result"},
	)

	validationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "satmad_tle_validation_errors_total",
			Help: "Rejected element values, by field.",
		},
		[]string{"field"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(tleBuiltTotal)
	prometheus.MustRegister(validationErrorsTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveBuild records the outcome of building an element set from source.
// Validation failures are also counted per field.
func ObserveBuild(source string, err error) {
	result := "ok"
	var ve *tle.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &ve):
		result = "invalid"
		validationErrorsTotal.WithLabelValues(ve.Field).Inc()
	default:
		result = "malformed"
	}
	tleBuiltTotal.WithLabelValues(source, result).Inc()
}

// exactRoutes are the paths reported as their own label.
var exactRoutes = map[string]bool{
	"/":                     true,
	"/healthz":              true,
	"/readyz":               true,
	"/metrics":              true,
	"/api/v1/tle/decode":    true,
	"/api/v1/tle/elements":  true,
	"/api/v1/tle/geo":       true,
	"/api/v1/tle/propagate": true,
	"/api/v1/gravity":       true,
}

const gravityPrefix = "/api/v1/gravity/"

// normalizeRoute maps a request path to a bounded set of label values so
// scanners and parameterised paths cannot blow up label cardinality.
func normalizeRoute(path string) string {
	if exactRoutes[path] {
		return path
	}
	if name, ok := strings.CutPrefix(path, gravityPrefix); ok && name != "" && !strings.Contains(name, "/") {
		return gravityPrefix + "{name}"
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		route := normalizeRoute(r.URL.Path)

		httpRequestsTotal.WithLabelValues(route, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(route, r.Method).Observe(duration)
	})
}
