package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/luciengaly/football-scraping/internal/match"
)

func TestObserveAssembly(t *testing.T) {
	m := New()
	m.ObserveAssembly(2*time.Millisecond, []match.Diagnostic{
		{Section: "stats", Kind: "missing_section"},
		{Section: "stats", Kind: "missing_section"},
		{Section: "odds", Kind: "length_mismatch"},
	})
	m.ObserveAssembly(time.Millisecond, nil)

	if got := testutil.ToFloat64(m.recordsAssembled); got != 2 {
		t.Errorf("records_assembled_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.diagnostics.WithLabelValues("stats", "missing_section")); got != 2 {
		t.Errorf("stats diagnostics = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.diagnostics.WithLabelValues("odds", "length_mismatch")); got != 1 {
		t.Errorf("odds diagnostics = %v, want 1", got)
	}
}

func TestObserveSinkWrite(t *testing.T) {
	m := New()
	m.ObserveSinkWrite("yaml", nil)
	m.ObserveSinkWrite("postgres", errors.New("connection refused"))

	if got := testutil.ToFloat64(m.sinkWrites.WithLabelValues("yaml", "ok")); got != 1 {
		t.Errorf("yaml ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.sinkWrites.WithLabelValues("postgres", "error")); got != 1 {
		t.Errorf("postgres error = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveHTTP("/health", "200", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `fscraper_http_requests_total{code="200",route="/health"} 1`) {
		t.Errorf("missing request counter in:\n%s", body)
	}
}
