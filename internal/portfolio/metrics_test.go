package portfolio

import (
	"testing"

	"PaperTrader/internal/model"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestMetrics_EndToEnd(t *testing.T) {
	acct := &model.Account{
		TotalValue:  d(1050000),
		CashBalance: d(50000),
		Holdings: []model.Position{{
			Symbol: "AAPL", Shares: 10, AvgPrice: d(100), CurrentPrice: d(110), Value: d(1100), GainLoss: d(100),
		}},
	}
	initial := d(1000000)

	if got := TotalGainLoss(acct, initial); !got.Equal(d(50000)) {
		t.Errorf("TotalGainLoss = %s, want 50000", got)
	}
	pct, ok := TotalGainLossPct(acct, initial)
	if !ok {
		t.Fatal("TotalGainLossPct not ok")
	}
	if got := pct.StringFixed(4); got != "5.0000" {
		t.Errorf("TotalGainLossPct = %s, want 5.0000", got)
	}
	posPct, ok := PositionGainLossPct(acct.Holdings[0])
	if !ok {
		t.Fatal("PositionGainLossPct not ok")
	}
	if got := posPct.StringFixed(2); got != "10.00" {
		t.Errorf("PositionGainLossPct = %s, want 10.00", got)
	}
}

func TestTotalGainLoss_SignChange(t *testing.T) {
	initial := d(1000000)
	tests := []struct {
		total int64
		sign  int
	}{
		{999999, -1},
		{1000000, 0},
		{1000001, 1},
		{0, -1},
	}
	for _, tt := range tests {
		acct := &model.Account{TotalValue: d(tt.total)}
		gain := TotalGainLoss(acct, initial)
		if gain.Sign() != tt.sign {
			t.Errorf("total %d: gain sign = %d, want %d", tt.total, gain.Sign(), tt.sign)
		}
		pct, ok := TotalGainLossPct(acct, initial)
		if !ok || pct.Sign() != tt.sign {
			t.Errorf("total %d: pct = %s (ok=%v), want sign %d", tt.total, pct, ok, tt.sign)
		}
	}
}

func TestTotalGainLossPct_ZeroInitial(t *testing.T) {
	acct := &model.Account{TotalValue: d(500)}
	if _, ok := TotalGainLossPct(acct, decimal.Zero); ok {
		t.Error("expected ok=false for zero initial investment")
	}
	if got := TotalGainLoss(acct, decimal.Zero); !got.Equal(d(500)) {
		t.Errorf("TotalGainLoss = %s, want 500", got)
	}
}

func TestPositionGainLossPct(t *testing.T) {
	tests := []struct {
		name string
		pos  model.Position
		want string
		ok   bool
	}{
		{"gain", model.Position{Shares: 10, AvgPrice: d(100), GainLoss: d(100)}, "10.00", true},
		{"loss", model.Position{Shares: 4, AvgPrice: d(50), GainLoss: d(-50)}, "-25.00", true},
		{"flat", model.Position{Shares: 3, AvgPrice: d(7), GainLoss: decimal.Zero}, "0.00", true},
		{"fractional", model.Position{Shares: 3, AvgPrice: decimal.RequireFromString("33.33"), GainLoss: decimal.RequireFromString("10.01")}, "10.01", true},
		{"zero shares", model.Position{Shares: 0, AvgPrice: d(100), GainLoss: d(0)}, "", false},
		{"zero cost", model.Position{Shares: 5, AvgPrice: decimal.Zero, GainLoss: d(5)}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PositionGainLossPct(tt.pos)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.StringFixed(2) != tt.want {
				t.Errorf("pct = %s, want %s", got.StringFixed(2), tt.want)
			}
		})
	}
}
