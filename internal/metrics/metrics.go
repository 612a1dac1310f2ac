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

	// Business metrics
	marketRequests     *prometheus.CounterVec
	quotesServed       *prometheus.CounterVec
	predictionsTotal   *prometheus.CounterVec
	predictionDuration prometheus.Histogram
	noticesTotal       *prometheus.CounterVec
	sessionActive      prometheus.Gauge
	watchlistSymbols   prometheus.Gauge
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

	// Business metrics
	r.marketRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockml_market_requests_total",
			Help: "Total number of market data requests served",
		},
		[]string{"operation"},
	)
	r.quotesServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockml_quotes_served_total",
			Help: "Total number of quote lookups",
		},
		[]string{"outcome"},
	)
	r.predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockml_predictions_total",
			Help: "Total number of predictions generated",
		},
		[]string{"model"},
	)
	r.predictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stockml_prediction_duration_seconds",
			Help:    "Prediction generation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.noticesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockml_notices_total",
			Help: "Total number of notices emitted",
		},
		[]string{"severity"},
	)
	r.sessionActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockml_session_active",
			Help: "Whether an authenticated session is active (0 or 1)",
		},
	)
	r.watchlistSymbols = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockml_watchlist_symbols",
			Help: "Number of symbols in the active watchlist",
		},
	)

	reg.MustRegister(r.marketRequests)
	reg.MustRegister(r.quotesServed)
	reg.MustRegister(r.predictionsTotal)
	reg.MustRegister(r.predictionDuration)
	reg.MustRegister(r.noticesTotal)
	reg.MustRegister(r.sessionActive)
	reg.MustRegister(r.watchlistSymbols)

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

// RecordMarketRequest records a served market data request.
func (r *Registry) RecordMarketRequest(operation string) {
	r.marketRequests.WithLabelValues(operation).Inc()
}

// RecordQuote records a quote lookup and its outcome.
func (r *Registry) RecordQuote(found bool) {
	outcome := "found"
	if !found {
		outcome = "not_found"
	}
	r.quotesServed.WithLabelValues(outcome).Inc()
}

// RecordPrediction records a generated prediction.
func (r *Registry) RecordPrediction(model string, duration float64) {
	r.predictionsTotal.WithLabelValues(model).Inc()
	r.predictionDuration.Observe(duration)
}

// RecordNotice records an emitted notice.
func (r *Registry) RecordNotice(severity string) {
	r.noticesTotal.WithLabelValues(severity).Inc()
}

// SetSessionActive sets the active-session gauge.
func (r *Registry) SetSessionActive(active bool) {
	if active {
		r.sessionActive.Set(1)
		return
	}
	r.sessionActive.Set(0)
}

// SetWatchlistSize sets the watchlist size.
func (r *Registry) SetWatchlistSize(size int) {
	r.watchlistSymbols.Set(float64(size))
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
