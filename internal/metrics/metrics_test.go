package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("scrape status=%d", w.Code)
	}
	b, _ := io.ReadAll(w.Body)
	return string(b)
}

func TestMetrics_ExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodPost, "/detect/", http.StatusOK, 25*time.Millisecond)
	m.ObserveInference(10 * time.Millisecond)
	m.InferenceFailed(FailureDecode)
	m.DetectionLogged("with_mask")
	m.DetectionLogged("with_mask")
	m.SetMuted(true)
	m.RegisterGaugeFunc("model_sessions_in_use", "sessions checked out", func() float64 { return 2 })
	m.RegisterCounterFunc("model_session_acquire_failures_total", "acquire timeouts", func() float64 { return 3 })

	body := scrape(t, m)
	for _, want := range []string{
		`maskmon_http_requests_total{method="POST",route="/detect/",status="200"} 1`,
		`maskmon_detections_total{label="with_mask"} 2`,
		`maskmon_inference_failures_total{kind="decode"} 1`,
		`maskmon_inference_duration_seconds_count 1`,
		`maskmon_mute_active 1`,
		`maskmon_model_sessions_in_use 2`,
		`# TYPE maskmon_model_session_acquire_failures_total counter`,
		`maskmon_model_session_acquire_failures_total 3`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}
