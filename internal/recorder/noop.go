package recorder

// NoopRecorder is a no-op implementation used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAccount(_ *AccountSnapshot) error { return nil }
func (n *NoopRecorder) RecordTrade(_ *TradeEvent) error        { return nil }
func (n *NoopRecorder) Close() error                           { return nil }
