package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/opencap/internal/infrastructure/config"
	"github.com/iho/opencap/internal/usecase"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("REDIS_URL", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestNewApp_WithoutOptionalServices(t *testing.T) {
	cfg := testConfig(t)

	a, err := newApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}
	defer a.Close()

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d", rec.Code)
	}

	body := `{"investment":"1m","equity":"20","pre_money":"4m"}`
	rec = httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/chain", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected chain to start, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))
	var summary struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Summary != usecase.FallbackNotConfigured {
		t.Fatalf("expected not-configured fallback, got %q", summary.Summary)
	}

	rec = httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "opencap_chains_started_total 1") {
		t.Fatalf("expected chain metric to be exported, got:\n%s", rec.Body.String())
	}
}

func TestNewApp_WithRedis(t *testing.T) {
	s := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RedisURL = fmt.Sprintf("redis://%s", s.Addr())

	a, err := newApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}
	defer a.Close()

	body := `{"investment":"1m","equity":"20","pre_money":"4m"}`
	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chain", strings.NewReader(body))
		req.Header.Set("Idempotency-Key", "start-1")
		rec := httptest.NewRecorder()
		a.router.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("expected first start to succeed, got %d: %s", first.Code, first.Body.String())
	}

	second := send()
	if second.Code != http.StatusCreated {
		t.Fatalf("expected replayed 201, got %d: %s", second.Code, second.Body.String())
	}
	if second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected second response to be a replay")
	}
}

func TestNewApp_InvalidCurrency(t *testing.T) {
	cfg := testConfig(t)
	cfg.DefaultCurrency = "XYZ"

	if _, err := newApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry()); err == nil {
		t.Fatal("expected error for unsupported default currency")
	}
}

func TestNewApp_RedisUnavailable(t *testing.T) {
	s := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RedisURL = fmt.Sprintf("redis://%s", s.Addr())
	s.Close()

	if _, err := newApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry()); err == nil {
		t.Fatal("expected error when redis is unreachable")
	}
}

func TestSweepLimitersStopsWithContext(t *testing.T) {
	cfg := testConfig(t)

	a, err := newApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.sweepLimiters(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweepLimiters did not stop after cancel")
	}
}
