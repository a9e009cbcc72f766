package model

import "github.com/shopspring/decimal"

// Account is a read-only snapshot of the remote account.
type Account struct {
	TotalValue  decimal.Decimal `json:"total_value"`
	CashBalance decimal.Decimal `json:"cash_balance"`
	Holdings    []Position      `json:"portfolio"`
}

// Position is a single symbol's holding as reported by the service.
type Position struct {
	Symbol       string          `json:"symbol"`
	Shares       int64           `json:"shares"`
	AvgPrice     decimal.Decimal `json:"avg_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Value        decimal.Decimal `json:"value"`
	GainLoss     decimal.Decimal `json:"gain_loss"`
}

// CostBasis returns shares * avg_price.
func (p Position) CostBasis() decimal.Decimal {
	return p.AvgPrice.Mul(decimal.NewFromInt(p.Shares))
}
