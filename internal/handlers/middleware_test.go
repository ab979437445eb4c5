package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mask_monitor"
	"mask_monitor/internal/metrics"
	"mask_monitor/internal/service"

	"github.com/google/uuid"
)

func TestRequestMiddleware_RequestID(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if _, err := uuid.Parse(w.Header().Get(requestIDHeader)); err != nil {
		t.Fatalf("expected generated uuid, got %q", w.Header().Get(requestIDHeader))
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "upstream-42")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "upstream-42" {
		t.Fatalf("expected propagated id, got %q", got)
	}
}

func TestCORS_AllowsAnyOrigin(t *testing.T) {
	r := newTestRouter(&service.Service{})

	req := httptest.NewRequest(http.MethodOptions, "/summary", nil)
	req.Header.Set("Origin", "http://camera.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status=%d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin=%q", got)
	}
}

func TestMetricsEndpoint_CountsRequests(t *testing.T) {
	m := metrics.New()
	sum := &mockSummary{sum: mask_monitor.Summary{WithMask: 1}}
	r := newTestRouter(&service.Service{Summary: sum}, WithMetrics(m))

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/summary", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(w.Body)
	text := string(body)

	for _, want := range []string{
		`maskmon_http_requests_total{method="GET",route="/summary",status="200"} 2`,
		`maskmon_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in metrics output", want)
		}
	}
}

func TestMetricsEndpoint_DisabledWithoutMetrics(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
}
