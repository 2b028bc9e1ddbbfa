package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics interface {
	ConnectionAccepted(listener string)
	RequestParsed(method string)
	ParseFailed(kind string)
	ResponseWritten(code int, bytes int)
	ObserveHandling(d time.Duration)
	Handler() http.Handler
}

type metrics struct {
	registry       *prometheus.Registry
	connections    *prometheus.CounterVec
	requests       *prometheus.CounterVec
	parseErrors    *prometheus.CounterVec
	responses      *prometheus.CounterVec
	bytesWritten   prometheus.Counter
	handleDuration prometheus.Histogram
}

// New registers the server collectors on a private registry.
func New() Metrics {
	m := &metrics{
		registry:     prometheus.NewRegistry(),
		connections:  prometheus.NewCounterVec(prometheus.CounterOpts{Name: "minihttp_connections_total", Help: "Number of accepted connections"}, []string{"listener"}),
		requests:     prometheus.NewCounterVec(prometheus.CounterOpts{Name: "minihttp_requests_total", Help: "Number of successfully parsed requests"}, []string{"method"}),
		parseErrors:  prometheus.NewCounterVec(prometheus.CounterOpts{Name: "minihttp_parse_errors_total", Help: "Number of rejected messages"}, []string{"kind"}),
		responses:    prometheus.NewCounterVec(prometheus.CounterOpts{Name: "minihttp_responses_total", Help: "Number of responses written"}, []string{"code"}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{Name: "minihttp_response_bytes_total", Help: "Bytes written in responses"}),
		handleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "minihttp_handle_duration_ms",
			Help:    "Histogram of connection handling durations in milliseconds",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
		}),
	}

	m.registry.MustRegister(m.connections, m.requests, m.parseErrors, m.responses, m.bytesWritten, m.handleDuration)
	return m
}

func (m *metrics) ConnectionAccepted(listener string) {
	m.connections.WithLabelValues(listener).Inc()
}

func (m *metrics) RequestParsed(method string) {
	m.requests.WithLabelValues(method).Inc()
}

func (m *metrics) ParseFailed(kind string) {
	m.parseErrors.WithLabelValues(kind).Inc()
}

func (m *metrics) ResponseWritten(code int, bytes int) {
	m.responses.WithLabelValues(strconv.Itoa(code)).Inc()
	m.bytesWritten.Add(float64(bytes))
}

func (m *metrics) ObserveHandling(d time.Duration) {
	m.handleDuration.Observe(float64(d.Milliseconds()))
}

func (m *metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
