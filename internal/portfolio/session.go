// Package portfolio keeps a client view of one account and mediates trades
// against the trading service.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"PaperTrader/internal/model"

	"go.uber.org/zap"
)

// Service is the remote side of a Session.
type Service interface {
	FetchPortfolio(ctx context.Context, token string) (*model.Account, error)
	SubmitTrade(ctx context.Context, token string, req model.TradeRequest) (*model.TradeConfirmation, error)
}

// TokenSource supplies the bearer credential. An empty token means the user
// is not logged in.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource holding a fixed credential.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Session mirrors the account state of a single user. The held Account is
// only ever replaced as a whole by the latest completed refresh.
type Session struct {
	svc    Service
	tokens TokenSource
	logger *zap.Logger

	mu       sync.Mutex
	account  *model.Account
	inFlight int
}

// NewSession creates a Session. A nil logger disables logging.
func NewSession(svc Service, tokens TokenSource, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	return &Session{svc: svc, tokens: tokens, logger: logger}
}

// Account returns the current snapshot, or nil while loading or after a failed refresh.
func (s *Session) Account() *model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account
}

// Loading reports whether a refresh is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// Refresh drops the held account and replaces it with a fresh snapshot from
// the service. On failure the account stays cleared.
func (s *Session) Refresh(ctx context.Context) (*model.Account, error) {
	s.mu.Lock()
	s.account = nil
	s.inFlight++
	s.mu.Unlock()

	acct, err := s.fetch(ctx)

	s.mu.Lock()
	s.inFlight--
	s.account = acct
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("portfolio refresh failed", zap.Error(err))
		return nil, err
	}
	s.logger.Info("portfolio refreshed",
		zap.String("total_value", acct.TotalValue.String()),
		zap.Int("holdings", len(acct.Holdings)),
	)
	return acct, nil
}

func (s *Session) fetch(ctx context.Context) (*model.Account, error) {
	token := s.tokens.Token()
	if token == "" {
		return nil, model.ErrAuthMissing
	}
	acct, err := s.svc.FetchPortfolio(ctx, token)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, model.ErrEmptyResponse
	}
	return acct, nil
}

// SubmitTrade validates and submits req, then refreshes the account before
// returning. The confirmation is for display only.
//
// When the trade succeeds but the follow-up refresh fails, the confirmation
// is returned together with the refresh error.
func (s *Session) SubmitTrade(ctx context.Context, req model.TradeRequest) (*model.TradeConfirmation, error) {
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}
	token := s.tokens.Token()
	if token == "" {
		return nil, model.ErrAuthMissing
	}

	log := s.logger.With(
		zap.String("symbol", req.Symbol),
		zap.Int64("shares", req.Shares),
		zap.String("action", string(req.Action)),
	)
	conf, err := s.svc.SubmitTrade(ctx, token, req)
	if err != nil {
		log.Warn("trade rejected", zap.Error(err))
		var se *model.ServiceError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, fmt.Errorf("%w: %v", model.ErrTradeFailed, err)
	}
	log.Info("trade executed", zap.String("price", conf.Price.String()))

	if _, err := s.Refresh(ctx); err != nil {
		return conf, fmt.Errorf("refresh after trade: %w", err)
	}
	return conf, nil
}

// normalize checks req locally and uppercases the symbol. The action must
// already be one of the lowercase model actions.
func normalize(req model.TradeRequest) (model.TradeRequest, error) {
	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" {
		return req, fmt.Errorf("%w: symbol is required", model.ErrInvalidTradeInput)
	}
	if req.Shares <= 0 {
		return req, fmt.Errorf("%w: shares must be positive, got %d", model.ErrInvalidTradeInput, req.Shares)
	}
	if !req.Action.Valid() {
		return req, fmt.Errorf("%w: unknown action %q", model.ErrInvalidTradeInput, req.Action)
	}
	return req, nil
}
