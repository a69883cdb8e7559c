package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/weareasocialyazilim/aigovernor/pkg/config"
	"github.com/weareasocialyazilim/aigovernor/pkg/governor/budget"
	"github.com/weareasocialyazilim/aigovernor/pkg/telemetry/metrics"
)

type stubStatus struct {
	status *budget.Status
	err    error
}

func (s stubStatus) Status(ctx context.Context) (*budget.Status, error) {
	return s.status, s.err
}

func testAdminConfig() *config.AdminConfig {
	return &config.AdminConfig{
		ListenAddress:   "127.0.0.1:0",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}
}

func TestHandleHealth(t *testing.T) {
	srv := NewServer(testAdminConfig(), stubStatus{}, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, expected 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, expected ok", body["status"])
	}
}

func TestHandleStatus(t *testing.T) {
	status := &budget.Status{
		MonthToDateUnits: 410,
		SoftLimitUnits:   1000,
		HardLimitUnits:   2000,
		RemainingUnits:   590,
		PercentUsed:      41,
		ByService:        map[string]int64{"vision.proof-verification": 410},
	}
	srv := NewServer(testAdminConfig(), stubStatus{status: status}, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /status = %d, expected 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got budget.Status
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode status response: %v", err)
	}
	if got.MonthToDateUnits != 410 || got.RemainingUnits != 590 {
		t.Errorf("decoded status = %+v", got)
	}
}

func TestHandleStatus_Unavailable(t *testing.T) {
	srv := NewServer(testAdminConfig(), stubStatus{err: errors.New("ledger down")}, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("GET /status with failing provider = %d, expected 503", rec.Code)
	}
}

func TestHandleMetrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	m.RecordAdmission("vision", "admitted")

	srv := NewServer(testAdminConfig(), stubStatus{}, m)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d, expected 200", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("metrics endpoint returned an empty body")
	}
}

func TestStartAndShutdown(t *testing.T) {
	srv := NewServer(testAdminConfig(), stubStatus{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	if !srv.IsRunning() {
		t.Fatal("server not running after Start")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned error on graceful shutdown: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	if srv.IsRunning() {
		t.Error("server still marked running after shutdown")
	}
}
