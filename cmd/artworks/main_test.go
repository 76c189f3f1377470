package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/artic-client/internal/config"
)

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	newMetricsMux().ServeHTTP(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if string(body) != "OK" {
		t.Errorf("Expected body 'OK', got %s", string(body))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	newMetricsMux().ServeHTTP(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	// Client metrics are registered at package init of pkg/client.
	if !strings.Contains(string(body), "artic_request_duration_seconds") {
		t.Error("Expected artworks metrics in output")
	}
}

func TestConnectRedis_Disabled(t *testing.T) {
	rdb, err := connectRedis(context.Background(), config.RedisConfig{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("connectRedis() error = %v", err)
	}
	if rdb != nil {
		t.Error("expected no client without an address")
	}
}

func TestConnectRedis_Unreachable(t *testing.T) {
	cfg := config.RedisConfig{Addr: "127.0.0.1:1"}

	rdb, err := connectRedis(context.Background(), cfg, zerolog.Nop())
	if err == nil {
		rdb.Close()
		t.Fatal("expected connection error")
	}
	if !strings.Contains(err.Error(), "127.0.0.1:1") {
		t.Errorf("error should name the address: %v", err)
	}
}
