package handlers

import (
	"context"
	"io"
	"sync"
	"time"

	"mask_monitor"
	"mask_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockDetection struct {
	dets     []mask_monitor.Detection
	err      error
	lastRaw  []byte
	detected int
}

func (m *mockDetection) Detect(_ context.Context, raw []byte) ([]mask_monitor.Detection, error) {
	m.detected++
	m.lastRaw = raw
	return m.dets, m.err
}

type mockSummary struct {
	sum mask_monitor.Summary
	err error
}

func (m *mockSummary) Summarize(context.Context) (mask_monitor.Summary, error) {
	return m.sum, m.err
}

type mockMonitoring struct {
	mu     sync.Mutex
	status mask_monitor.Status
	err    error
	calls  int
}

func (m *mockMonitoring) GetStatus(context.Context) (mask_monitor.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.status, m.err
}

type mockDetectionLog struct {
	page      service.LogPage
	recentErr error
	csv       string
	exportErr error
}

func (m *mockDetectionLog) Recent(context.Context) (service.LogPage, error) {
	return m.page, m.recentErr
}

func (m *mockDetectionLog) Export(_ context.Context, w io.Writer) error {
	if m.exportErr != nil {
		return m.exportErr
	}
	_, err := io.WriteString(w, m.csv)
	return err
}

type mockMute struct {
	state       mask_monitor.MuteState
	muteErr     error
	statusErr   error
	window      time.Duration
	muteCalls   int
	statusCalls int
}

func (m *mockMute) Mute(context.Context) (mask_monitor.MuteState, error) {
	m.muteCalls++
	return m.state, m.muteErr
}

func (m *mockMute) Status(context.Context) (mask_monitor.MuteState, error) {
	m.statusCalls++
	return m.state, m.statusErr
}

func (m *mockMute) Window() time.Duration { return m.window }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	h := NewHandler(s, nil, opts...)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
