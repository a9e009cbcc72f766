package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/google/subcommands"
)

func newChartService(t *testing.T) *atomic.Int32 {
	t.Helper()
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"dates":["2024-01-02 00:00:00","2024-01-03 00:00:00"],"prices":[100,110]}`))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PAPERTRADER_BASE_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "error")
	return &requests
}

func TestChartCmd_BlankSymbol(t *testing.T) {
	requests := newChartService(t)
	for _, symbol := range []string{"", "   "} {
		cmd := &chartCmd{symbol: symbol, period: "1y"}
		if got := cmd.Execute(context.Background(), nil); got != subcommands.ExitUsageError {
			t.Errorf("symbol %q: exit = %v, want ExitUsageError", symbol, got)
		}
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestChartCmd_Fetches(t *testing.T) {
	requests := newChartService(t)
	cmd := &chartCmd{symbol: "aapl", period: "1y", points: true}
	if got := cmd.Execute(context.Background(), nil); got != subcommands.ExitSuccess {
		t.Fatalf("exit = %v, want ExitSuccess", got)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("requests = %d, want 1", n)
	}
}

func TestChartCmd_UnknownPeriod(t *testing.T) {
	requests := newChartService(t)
	cmd := &chartCmd{symbol: "AAPL", period: "2y"}
	if got := cmd.Execute(context.Background(), nil); got != subcommands.ExitFailure {
		t.Errorf("exit = %v, want ExitFailure", got)
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}
