// Package metrics records redirect gate and sitemap outcomes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "seo"

// Recorder receives gate and sitemap observations.
type Recorder interface {
	ObserveDecision(resource, kind string)
	ObserveLookupError(resource string)
	ObserveSitemap(document, outcome string, entries int, elapsed time.Duration)
	ObserveSlugReassignment(resource, outcome string, attempts int)
}

// Prometheus implements Recorder on a dedicated registry.
type Prometheus struct {
	registry *prometheus.Registry

	decisions      *prometheus.CounterVec
	lookupErrors   *prometheus.CounterVec
	sitemapRuns    *prometheus.CounterVec
	sitemapEntries *prometheus.GaugeVec
	sitemapLatency *prometheus.HistogramVec
	reslugAttempts *prometheus.HistogramVec
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus registers the SEO collectors on a fresh registry.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_decisions_total",
			Help:      "Redirect gate decisions by resource and kind (render, redirect, not_found)",
		}, []string{"resource", "kind"}),
		lookupErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_errors_total",
			Help:      "Store failures treated as not found by the canonical resolver",
		}, []string{"resource"}),
		sitemapRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sitemap_emissions_total",
			Help:      "Sitemap document emissions by outcome",
		}, []string{"document", "outcome"}),
		sitemapEntries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sitemap_entries",
			Help:      "URL entries in the last emitted sitemap document",
		}, []string{"document"}),
		sitemapLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sitemap_emission_duration_seconds",
			Help:      "Time to emit a sitemap document",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"document"}),
		reslugAttempts: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "slug_reassignment_attempts",
			Help:      "Candidates tried per slug reassignment",
			Buckets:   []float64{1, 2, 3, 5, 10, 25},
		}, []string{"resource", "outcome"}),
	}
}

func (p *Prometheus) ObserveDecision(resource, kind string) {
	p.decisions.WithLabelValues(resource, kind).Inc()
}

func (p *Prometheus) ObserveLookupError(resource string) {
	p.lookupErrors.WithLabelValues(resource).Inc()
}

func (p *Prometheus) ObserveSitemap(document, outcome string, entries int, elapsed time.Duration) {
	p.sitemapRuns.WithLabelValues(document, outcome).Inc()
	p.sitemapLatency.WithLabelValues(document).Observe(elapsed.Seconds())
	if outcome == OutcomeOK {
		p.sitemapEntries.WithLabelValues(document).Set(float64(entries))
	}
}

func (p *Prometheus) ObserveSlugReassignment(resource, outcome string, attempts int) {
	p.reslugAttempts.WithLabelValues(resource, outcome).Observe(float64(attempts))
}

// Registry exposes the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Nop discards observations.
type Nop struct{}

var _ Recorder = Nop{}

func (Nop) ObserveDecision(string, string)                    {}
func (Nop) ObserveLookupError(string)                         {}
func (Nop) ObserveSitemap(string, string, int, time.Duration) {}
func (Nop) ObserveSlugReassignment(string, string, int)       {}

// Ensure returns r, or Nop when r is nil.
func Ensure(r Recorder) Recorder {
	if r == nil {
		return Nop{}
	}
	return r
}
