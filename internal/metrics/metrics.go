package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Dashboard metrics
	pageRenders      *prometheus.CounterVec
	dataLoads        *prometheus.CounterVec
	dataLoadDuration prometheus.Histogram
	cardsRendered    *prometheus.CounterVec
	chartsDrawn      *prometheus.CounterVec
	reportsIngested  *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	r.pageRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stratdeck_page_renders_total",
			Help: "Total number of dashboard page renders",
		},
		[]string{"page", "outcome"},
	)
	r.dataLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stratdeck_data_loads_total",
			Help: "Total number of data.json loads",
		},
		[]string{"status"},
	)
	r.dataLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stratdeck_data_load_duration_seconds",
			Help:    "data.json load duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
	r.cardsRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stratdeck_cards_rendered_total",
			Help: "Total number of strategy cards rendered",
		},
		[]string{"risk"},
	)
	r.chartsDrawn = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stratdeck_charts_drawn_total",
			Help: "Total number of equity charts drawn",
		},
		[]string{"status"},
	)
	r.reportsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stratdeck_reports_ingested_total",
			Help: "Total number of report files processed by ingest",
		},
		[]string{"status"},
	)

	reg.MustRegister(r.pageRenders)
	reg.MustRegister(r.dataLoads)
	reg.MustRegister(r.dataLoadDuration)
	reg.MustRegister(r.cardsRendered)
	reg.MustRegister(r.chartsDrawn)
	reg.MustRegister(r.reportsIngested)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordPageRender records a rendered page. Outcome is one of "rendered",
// "empty", "redirect" or "pending".
func (r *Registry) RecordPageRender(page, outcome string) {
	r.pageRenders.WithLabelValues(page, outcome).Inc()
}

// RecordDataLoad records a data.json load attempt.
func (r *Registry) RecordDataLoad(status string, duration float64) {
	r.dataLoads.WithLabelValues(status).Inc()
	r.dataLoadDuration.Observe(duration)
}

// RecordCard records one rendered card by risk level.
func (r *Registry) RecordCard(risk string) {
	r.cardsRendered.WithLabelValues(risk).Inc()
}

// RecordChart records one chart draw.
func (r *Registry) RecordChart(status string) {
	r.chartsDrawn.WithLabelValues(status).Inc()
}

// RecordReportIngested records one processed report file.
func (r *Registry) RecordReportIngested(status string) {
	r.reportsIngested.WithLabelValues(status).Inc()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
