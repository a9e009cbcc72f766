package scheduler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"PaperTrader/internal/client"
	"PaperTrader/internal/model"
	"PaperTrader/internal/notifier"
	"PaperTrader/internal/portfolio"
	"PaperTrader/internal/recorder"
	"PaperTrader/internal/series"
)

// tradingService is an in-memory stand-in for the trading REST API.
type tradingService struct {
	mu    sync.Mutex
	calls []string
	owned int64
}

func (ts *tradingService) log(call string) {
	ts.mu.Lock()
	ts.calls = append(ts.calls, call)
	ts.mu.Unlock()
}

func (ts *tradingService) callLog() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]string(nil), ts.calls...)
}

func (ts *tradingService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/portfolio":
		ts.log("portfolio")
		ts.mu.Lock()
		owned := ts.owned
		ts.mu.Unlock()
		holdings := `[]`
		if owned > 0 {
			holdings = `[{"symbol":"AAPL","shares":10,"avg_price":100,"current_price":110,"value":1100,"gain_loss":100}]`
		}
		w.Write([]byte(`{"total_value":1050000,"cash_balance":50000,"portfolio":` + holdings + `}`))
	case r.URL.Path == "/api/trade":
		var req model.TradeRequest
		json.NewDecoder(r.Body).Decode(&req)
		ts.log("trade " + string(req.Action) + " " + req.Symbol)
		if req.Action == model.ActionSell {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Insufficient shares. You own 0 shares"}`))
			return
		}
		ts.mu.Lock()
		ts.owned += req.Shares
		ts.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{
			"message": "ok",
			"transaction": map[string]any{
				"action": req.Action, "shares": req.Shares, "symbol": req.Symbol, "price": 110, "total": 110 * req.Shares,
			},
		})
	case strings.HasPrefix(r.URL.Path, "/api/stock/"):
		sym := strings.TrimPrefix(r.URL.Path, "/api/stock/")
		ts.log("stock " + sym + " " + r.URL.Query().Get("period") + " " + r.URL.Query().Get("interval"))
		info := `null`
		if sym == "AAPL" {
			info = `{"longName":"Apple Inc."}`
		}
		w.Write([]byte(`{"dates":["2024-01-02 00:00:00","2024-01-03 00:00:00"],"prices":[100,110],"info":` + info + `}`))
	default:
		http.NotFound(w, r)
	}
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	f.sent = append(f.sent, text)
	f.mu.Unlock()
	return nil
}

func newTestScheduler(t *testing.T, token string) (*Scheduler, *tradingService, *fakeSender, *recorder.SQLiteRecorder) {
	t.Helper()
	svc := &tradingService{}
	srv := httptest.NewServer(svc)
	t.Cleanup(srv.Close)

	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"), nil)
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	t.Cleanup(func() { rec.Close() })

	c := client.New(srv.URL, 0, "", nil)
	sess := portfolio.NewSession(c, portfolio.StaticToken(token), nil)
	sender := &fakeSender{}
	s := NewScheduler(context.Background(), sess, series.NewFetcher(c, nil), sender, rec, nil)
	s.Format = notifier.Formatter{Currency: "USD"}
	s.Watch = series.NewFetcher(c, nil)
	return s, svc, sender, rec
}

func TestHandleCommand_Portfolio(t *testing.T) {
	s, svc, _, _ := newTestScheduler(t, "tok")
	out := s.HandleCommand(context.Background(), "/portfolio")
	if !strings.Contains(out, "Total Value: $1,050,000.00") || !strings.Contains(out, "No holdings yet") {
		t.Errorf("unexpected reply:\n%s", out)
	}
	if calls := svc.callLog(); len(calls) != 1 || calls[0] != "portfolio" {
		t.Errorf("calls = %v", calls)
	}
}

func TestHandleCommand_NotLoggedIn(t *testing.T) {
	s, svc, _, _ := newTestScheduler(t, "")
	out := s.HandleCommand(context.Background(), "/refresh")
	if out != "❌ No authentication token found" {
		t.Errorf("reply = %q", out)
	}
	if calls := svc.callLog(); len(calls) != 0 {
		t.Errorf("expected no requests, got %v", calls)
	}
}

func TestHandleCommand_Buy(t *testing.T) {
	s, svc, _, rec := newTestScheduler(t, "tok")
	out := s.HandleCommand(context.Background(), "/buy aapl 10")

	if !strings.Contains(out, "BUY: 10 shares of AAPL at $110.00") {
		t.Errorf("missing confirmation:\n%s", out)
	}
	if !strings.Contains(out, "AAPL  10 @ $100.00") {
		t.Errorf("missing refreshed holdings:\n%s", out)
	}
	calls := svc.callLog()
	if len(calls) != 2 || calls[0] != "trade buy AAPL" || calls[1] != "portfolio" {
		t.Errorf("calls = %v, want trade then one refresh", calls)
	}
	if n, _ := rec.CountTrades(); n != 1 {
		t.Errorf("recorded trades = %d, want 1", n)
	}
}

func TestHandleCommand_SellRejected(t *testing.T) {
	s, svc, _, rec := newTestScheduler(t, "tok")
	out := s.HandleCommand(context.Background(), "/sell AAPL 5")
	if out != "❌ Insufficient shares. You own 0 shares" {
		t.Errorf("reply = %q", out)
	}
	if calls := svc.callLog(); len(calls) != 1 {
		t.Errorf("calls = %v, want no refresh after rejection", calls)
	}
	if n, _ := rec.CountTrades(); n != 0 {
		t.Errorf("recorded trades = %d, want 0", n)
	}
}

func TestHandleCommand_InvalidTrade(t *testing.T) {
	s, svc, _, _ := newTestScheduler(t, "tok")
	for _, cmd := range []string{"/buy AAPL", "/buy AAPL ten", "/sell AAPL 0", "/buy AAPL -1"} {
		if out := s.HandleCommand(context.Background(), cmd); out != "❌ Please enter valid symbol and number of shares" {
			t.Errorf("%s: reply = %q", cmd, out)
		}
	}
	if calls := svc.callLog(); len(calls) != 0 {
		t.Errorf("expected no requests, got %v", calls)
	}
}

func TestHandleCommand_ChartAndPeriod(t *testing.T) {
	s, svc, _, _ := newTestScheduler(t, "tok")
	ctx := context.Background()

	if out := s.HandleCommand(ctx, "/period 1y"); !strings.Contains(out, "Enter a stock symbol") {
		t.Errorf("period without symbol: %q", out)
	}
	out := s.HandleCommand(ctx, "/chart@paper_bot aapl")
	if !strings.Contains(out, "Apple Inc.") || !strings.Contains(out, "Current Price: $110.00") {
		t.Errorf("unexpected chart reply:\n%s", out)
	}
	s.HandleCommand(ctx, "/period 5y")
	s.HandleCommand(ctx, "/chart MSFT")

	want := []string{"stock AAPL 1y 1d", "stock AAPL 5y 1wk", "stock MSFT 5y 1wk"}
	calls := svc.callLog()
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}

	if out := s.HandleCommand(ctx, "/chart AAPL 2y"); out != "❌ Unknown chart period" {
		t.Errorf("unknown period reply = %q", out)
	}
	if len(svc.callLog()) != len(want) {
		t.Error("unknown period must not issue a request")
	}
}

func TestHandleCommand_Help(t *testing.T) {
	s, _, _, _ := newTestScheduler(t, "tok")
	for _, cmd := range []string{"", "/start", "/chart", "/period"} {
		if out := s.HandleCommand(context.Background(), cmd); !strings.Contains(out, "Available commands") {
			t.Errorf("%q: expected help, got %q", cmd, out)
		}
	}
}

func TestScheduledTasks(t *testing.T) {
	s, svc, sender, _ := newTestScheduler(t, "tok")
	s.Watchlist = []string{"AAPL", "MSFT"}
	if err := s.RegisterAll("0 0 22 * * 1-5", "0 30 22 * * 1-5"); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	if n := len(s.Cron.Entries()); n != 2 {
		t.Errorf("cron entries = %d, want 2", n)
	}

	s.RunPortfolioNow()
	s.watchlistTask()

	if len(sender.sent) != 2 {
		t.Fatalf("sent = %d messages, want 2", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0], "Account Summary") {
		t.Errorf("portfolio report:\n%s", sender.sent[0])
	}
	if !strings.Contains(sender.sent[1], "Apple Inc.") || !strings.Contains(sender.sent[1], "MSFT") {
		t.Errorf("watchlist report:\n%s", sender.sent[1])
	}
	if sym, _ := s.Series.Selection(); sym != "" {
		t.Errorf("watchlist must not change the chat selection, got %q", sym)
	}
	calls := svc.callLog()
	if calls[len(calls)-1] != "stock MSFT 1mo 1d" {
		t.Errorf("last call = %q", calls[len(calls)-1])
	}
}

func TestRegisterAll_BadCron(t *testing.T) {
	s, _, _, _ := newTestScheduler(t, "tok")
	if err := s.RegisterAll("not a cron", ""); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}
