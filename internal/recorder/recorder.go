package recorder

import (
	"time"

	"PaperTrader/internal/model"
)

// AccountSnapshot is one successful refresh.
type AccountSnapshot struct {
	Account *model.Account
	At      time.Time
}

// TradeEvent is one executed trade as confirmed by the service.
type TradeEvent struct {
	Confirmation *model.TradeConfirmation
	At           time.Time
}

// Recorder appends history for later analysis. Nothing reads it back to
// build session state.
type Recorder interface {
	RecordAccount(snap *AccountSnapshot) error
	RecordTrade(evt *TradeEvent) error
	Close() error
}
