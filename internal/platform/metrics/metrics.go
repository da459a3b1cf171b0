// Package metrics exposes the Prometheus collectors of the club service.
// A nil *Recorder is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "futsal_club"

type Recorder struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	snapshotRefreshes   *prometheus.CounterVec
	snapshotDuration    prometheus.Histogram
	snapshotEntries     *prometheus.GaugeVec
	pipelineSteps       *prometheus.CounterVec
	skillRecalculations *prometheus.CounterVec
	teamBalanceScore    prometheus.Histogram
	cacheLookups        *prometheus.CounterVec
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New(namespace string) *Recorder {
	if namespace == "" {
		namespace = defaultNamespace
	}
	registry := prometheus.NewRegistry()
	r := &Recorder{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		snapshotRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranking_snapshot_refresh_total",
			Help:      "Ranking snapshot compilations by trigger and outcome.",
		}, []string{"trigger", "outcome"}),
		snapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_snapshot_compile_seconds",
			Help:      "Time to load and compile one season snapshot.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		snapshotEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ranking_snapshot_entries",
			Help:      "Players in the latest snapshot of each season.",
		}, []string{"year"}),
		pipelineSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "secondary_effect_steps_total",
			Help:      "Secondary effect steps run after a primary mutation, by step and outcome.",
		}, []string{"step", "outcome"}),
		skillRecalculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skill_recalculations_total",
			Help:      "Player skill vector recomputations by outcome.",
		}, []string{"outcome"}),
		teamBalanceScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "team_balance_score",
			Help:      "Balance score of generated team sets.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Read-through cache lookups by cache and result.",
		}, []string{"cache", "result"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpRequestDuration,
		r.snapshotRefreshes,
		r.snapshotDuration,
		r.snapshotEntries,
		r.pipelineSteps,
		r.skillRecalculations,
		r.teamBalanceScore,
		r.cacheLookups,
	)
	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveSnapshotRefresh(year int, trigger string, entries int, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	r.snapshotRefreshes.WithLabelValues(trigger, outcome(err)).Inc()
	if err != nil {
		return
	}
	r.snapshotDuration.Observe(elapsed.Seconds())
	r.snapshotEntries.WithLabelValues(strconv.Itoa(year)).Set(float64(entries))
}

func (r *Recorder) ObservePipelineStep(step string, err error) {
	if r == nil {
		return
	}
	r.pipelineSteps.WithLabelValues(step, outcome(err)).Inc()
}

func (r *Recorder) ObserveSkillRecalculation(err error) {
	if r == nil {
		return
	}
	r.skillRecalculations.WithLabelValues(outcome(err)).Inc()
}

func (r *Recorder) ObserveBalanceScore(score float64) {
	if r == nil {
		return
	}
	r.teamBalanceScore.Observe(score)
}

func (r *Recorder) ObserveCacheLookup(cache, result string) {
	if r == nil {
		return
	}
	r.cacheLookups.WithLabelValues(cache, result).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
