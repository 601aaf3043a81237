package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Score outcomes recorded by ObserveScore.
const (
	OutcomeScored      = "scored"
	OutcomeNoResponses = "no_responses"
	OutcomeNotFound    = "not_found"
	OutcomeInvalid     = "invalid"
	OutcomeFailed      = "failed"
)

type Metrics struct {
	scores          *prometheus.CounterVec
	totalScores     *prometheus.HistogramVec
	catalogReloads  *prometheus.CounterVec
	catalogSize     prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpDurations   *prometheus.HistogramVec
	publishFailures prometheus.Counter
}

// New registers the service collectors with reg. Passing a fresh registry
// keeps tests independent of the global one.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		scores: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "koos",
			Name:      "scores_total",
			Help:      "Scoring requests by questionnaire and outcome.",
		}, []string{"questionnaire", "outcome"}),
		totalScores: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "koos",
			Name:      "total_score",
			Help:      "Distribution of computed total scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}, []string{"questionnaire"}),
		catalogReloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "koos",
			Name:      "catalog_reloads_total",
			Help:      "Catalog reload attempts by outcome.",
		}, []string{"outcome"}),
		catalogSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "koos",
			Name:      "catalog_questionnaires",
			Help:      "Questionnaires in the catalog currently served.",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "koos",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpDurations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "koos",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		publishFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "koos",
			Name:      "event_publish_failures_total",
			Help:      "Score events that could not be published.",
		}),
	}
}

// ObserveScore counts a scoring attempt. The total is only recorded for
// reports that were actually scored.
func (m *Metrics) ObserveScore(questionnaireID, outcome string, totalScore float64) {
	m.scores.WithLabelValues(questionnaireID, outcome).Inc()
	if outcome == OutcomeScored {
		m.totalScores.WithLabelValues(questionnaireID).Observe(totalScore)
	}
}

func (m *Metrics) ObserveCatalogReload(err error, size int) {
	if err != nil {
		m.catalogReloads.WithLabelValues("failed").Inc()
		return
	}
	m.catalogReloads.WithLabelValues("succeeded").Inc()
	m.catalogSize.Set(float64(size))
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDurations.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) IncPublishFailures() {
	m.publishFailures.Inc()
}
