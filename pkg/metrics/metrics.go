// Package metrics exposes the Prometheus collectors shared by the API and the worker.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "credably"

// Recorder owns every collector. A nil *Recorder is valid and records nothing,
// which keeps use cases free of metric plumbing in tests.
type Recorder struct {
	registry *prometheus.Registry

	scoreCalculations *prometheus.CounterVec
	overallScore      prometheus.Histogram
	syncOutcomes      *prometheus.CounterVec
	syncDuration      *prometheus.HistogramVec
	aiCalls           *prometheus.CounterVec
	eventsPublished   *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// NewRecorder registers all collectors on a private registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		scoreCalculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_calculations_total",
			Help:      "Credibility score calculations by resulting verification level.",
		}, []string{"level"}),
		overallScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overall_score",
			Help:      "Distribution of calculated overall credibility scores.",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 75, 90, 100},
		}),
		syncOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_total",
			Help:      "Platform sync attempts by platform and final status.",
		}, []string{"platform", "status"}),
		syncDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Platform sync latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"platform"}),
		aiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_calls_total",
			Help:      "AI analysis calls by kind and outcome.",
		}, []string{"kind", "outcome"}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Evidence-changed events handed to Kafka.",
		}, []string{"event_type", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	r.registry.MustRegister(
		r.scoreCalculations,
		r.overallScore,
		r.syncOutcomes,
		r.syncDuration,
		r.aiCalls,
		r.eventsPublished,
		r.httpRequests,
		r.httpDuration,
	)
	return r
}

func (r *Recorder) ObserveScore(level string, overall int) {
	if r == nil {
		return
	}
	r.scoreCalculations.WithLabelValues(level).Inc()
	r.overallScore.Observe(float64(overall))
}

func (r *Recorder) ObserveSync(platform, status string, took time.Duration) {
	if r == nil {
		return
	}
	r.syncOutcomes.WithLabelValues(platform, status).Inc()
	r.syncDuration.WithLabelValues(platform).Observe(took.Seconds())
}

func (r *Recorder) ObserveAICall(kind string, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.aiCalls.WithLabelValues(kind, outcome).Inc()
}

func (r *Recorder) ObserveEvent(eventType string, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.eventsPublished.WithLabelValues(eventType, outcome).Inc()
}

// GinMiddleware records request counts and latency keyed by the route template.
func (r *Recorder) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if r == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		r.httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// Registry is exposed for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
