package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/haskel/cpuwatch/internal/config"
	"github.com/haskel/cpuwatch/internal/counters"
	"github.com/haskel/cpuwatch/internal/monitor"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakePipeline struct {
	store *monitor.Store
	state monitor.State
}

func (f *fakePipeline) Store() *monitor.Store { return f.store }
func (f *fakePipeline) State() monitor.State  { return f.state }

func newFakePipeline(state monitor.State) *fakePipeline {
	store := monitor.NewStore(2)
	store.Bootstrap(make([]counters.Snapshot, 2))
	store.SetUsage(monitor.Usage{62.5, 50, 75})
	return &fakePipeline{store: store, state: state}
}

func testConfig() config.ServerConfig {
	cfg := config.Default().Server
	cfg.Enabled = true
	cfg.RateLimit.Enabled = false
	return cfg
}

func TestServer_Routes(t *testing.T) {
	srv := New(testConfig(), newFakePipeline(monitor.StateRunning), testLogger(), "0.1.0")

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	t.Run("GET /", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		var info InfoResponse
		if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if info.Name != "cpuwatch" || info.Version != "0.1.0" {
			t.Errorf("unexpected info: %+v", info)
		}
	})

	t.Run("GET /health", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/health")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected status 200, got %d", resp.StatusCode)
		}
		if resp.Header.Get("Cache-Control") != "no-store" {
			t.Error("expected no-store cache header")
		}
	})

	t.Run("GET /status", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/status")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		var status StatusResponse
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}

		if status.Aggregate != 62.5 {
			t.Errorf("expected aggregate 62.5, got %f", status.Aggregate)
		}
		if len(status.PerCore) != 2 || status.PerCore[1] != 75 {
			t.Errorf("unexpected per-core usage: %v", status.PerCore)
		}
		if status.Cores != 2 || status.Samples != 1 || status.State != "running" {
			t.Errorf("unexpected status: %+v", status)
		}
	})

	t.Run("GET /metrics", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/metrics")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		if !strings.Contains(buf.String(), "cpuwatch_usage_percent") {
			t.Error("expected usage metric in /metrics output")
		}
	})

	t.Run("unknown path", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/ask")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", resp.StatusCode)
		}
	})
}

func TestServer_HealthWhenStopping(t *testing.T) {
	srv := New(testConfig(), newFakePipeline(monitor.StateShuttingDown), testLogger(), "0.1.0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.State != "shutting_down" {
		t.Errorf("expected state shutting_down, got %s", resp.State)
	}
}

func TestServer_Addr(t *testing.T) {
	cfg := testConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 9999

	srv := New(cfg, newFakePipeline(monitor.StateRunning), testLogger(), "0.1.0")

	if srv.Addr() != "127.0.0.1:9999" {
		t.Errorf("expected addr 127.0.0.1:9999, got %s", srv.Addr())
	}
	if srv.Name() != "http" {
		t.Errorf("expected task name http, got %s", srv.Name())
	}
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	srv := New(testConfig(), newFakePipeline(monitor.StateRunning), testLogger(), "0.1.0")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil after cancellation, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}

func TestServer_RunListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	cfg := testConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = ln.Addr().(*net.TCPAddr).Port

	srv := New(cfg, newFakePipeline(monitor.StateRunning), testLogger(), "0.1.0")

	if err := srv.Run(context.Background()); err == nil {
		t.Error("expected error when the port is taken")
	}
}
