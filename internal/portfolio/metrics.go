package portfolio

import (
	"PaperTrader/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TotalGainLoss returns total_value - initialInvestment.
func TotalGainLoss(acct *model.Account, initialInvestment decimal.Decimal) decimal.Decimal {
	return acct.TotalValue.Sub(initialInvestment)
}

// TotalGainLossPct returns the total gain as a percentage of the initial
// investment. ok is false when the initial investment is zero.
func TotalGainLossPct(acct *model.Account, initialInvestment decimal.Decimal) (pct decimal.Decimal, ok bool) {
	if initialInvestment.IsZero() {
		return decimal.Zero, false
	}
	return TotalGainLoss(acct, initialInvestment).Div(initialInvestment).Mul(hundred), true
}

// PositionGainLossPct returns gain_loss / (avg_price * shares) * 100.
// ok is false for a zero-share position or a zero cost basis.
func PositionGainLossPct(p model.Position) (pct decimal.Decimal, ok bool) {
	if p.Shares == 0 {
		return decimal.Zero, false
	}
	cost := p.CostBasis()
	if cost.IsZero() {
		return decimal.Zero, false
	}
	return p.GainLoss.Div(cost).Mul(hundred), true
}
