package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusCountsDecisions(t *testing.T) {
	p := NewPrometheus()
	p.ObserveDecision("news", "redirect")
	p.ObserveDecision("news", "redirect")
	p.ObserveDecision("news", "render")

	if got := testutil.ToFloat64(p.decisions.WithLabelValues("news", "redirect")); got != 2 {
		t.Fatalf("expected 2 redirects, got %v", got)
	}
}

func TestPrometheusSitemapGaugeOnlyOnSuccess(t *testing.T) {
	p := NewPrometheus()
	p.ObserveSitemap("blogs", OutcomeOK, 12, 10*time.Millisecond)
	p.ObserveSitemap("blogs", OutcomeError, 0, time.Millisecond)

	if got := testutil.ToFloat64(p.sitemapEntries.WithLabelValues("blogs")); got != 12 {
		t.Fatalf("expected gauge to keep last successful count, got %v", got)
	}
	if got := testutil.ToFloat64(p.sitemapRuns.WithLabelValues("blogs", OutcomeError)); got != 1 {
		t.Fatalf("expected one failed run, got %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	p := NewPrometheus()
	p.ObserveLookupError("company")
	p.ObserveSlugReassignment("blog", OutcomeOK, 2)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "seo_lookup_errors_total") {
		t.Fatalf("expected lookup counter in output:\n%s", rec.Body.String())
	}
}

func TestEnsureFallsBackToNop(t *testing.T) {
	if _, ok := Ensure(nil).(Nop); !ok {
		t.Fatal("expected Nop recorder")
	}
}
