package model

import "github.com/shopspring/decimal"

// Action is the side of a trade.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// Valid reports whether a is one of the supported actions.
func (a Action) Valid() bool {
	return a == ActionBuy || a == ActionSell
}

// TradeRequest is built per submission and discarded after the response.
type TradeRequest struct {
	Symbol string `json:"symbol"`
	Shares int64  `json:"shares"`
	Action Action `json:"action"`
}

// TradeConfirmation is the fill echoed by the service. It is only used to
// notify the user; account state always comes from a refresh.
type TradeConfirmation struct {
	Action Action          `json:"action"`
	Shares int64           `json:"shares"`
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
	Total  decimal.Decimal `json:"total"`
}
