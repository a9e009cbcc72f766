package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"PaperTrader/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client talks to the trading service REST API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *zap.Logger
}

// New creates a client with a bounded timeout and optional proxy support.
func New(baseURL string, timeout time.Duration, proxyURL string, logger *zap.Logger) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		Logger: logger,
	}
}

// tradePayload mirrors the POST /api/trade response.
type tradePayload struct {
	Message     string                   `json:"message"`
	Transaction *model.TradeConfirmation `json:"transaction"`
}

// seriesPayload mirrors GET /api/stock/{symbol}.
type seriesPayload struct {
	Dates  []string          `json:"dates"`
	Prices []decimal.Decimal `json:"prices"`
	Info   *model.SeriesInfo `json:"info"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// FetchPortfolio reads the account snapshot for the bearer token.
// An empty or null body is reported as model.ErrEmptyResponse.
func (c *Client) FetchPortfolio(ctx context.Context, token string) (*model.Account, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/portfolio", token, nil)
	if err != nil {
		return nil, err
	}
	var acct *model.Account
	if err := decode(body, &acct); err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, model.ErrEmptyResponse
	}
	if acct.Holdings == nil {
		acct.Holdings = []model.Position{}
	}
	return acct, nil
}

// SubmitTrade posts a trade and returns the fill echoed by the service.
func (c *Client) SubmitTrade(ctx context.Context, token string, req model.TradeRequest) (*model.TradeConfirmation, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal trade: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/api/trade", token, payload)
	if err != nil {
		return nil, err
	}
	var p *tradePayload
	if err := decode(body, &p); err != nil {
		return nil, err
	}
	if p == nil || p.Transaction == nil {
		return nil, model.ErrEmptyResponse
	}
	return p.Transaction, nil
}

// FetchSeries reads the price history of symbol over rng sampled at interval.
func (c *Client) FetchSeries(ctx context.Context, symbol, rng, interval string) (*model.Series, error) {
	q := url.Values{}
	q.Set("period", rng)
	q.Set("interval", interval)
	path := fmt.Sprintf("/api/stock/%s?%s", url.PathEscape(symbol), q.Encode())

	body, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	var p *seriesPayload
	if err := decode(body, &p); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.ErrEmptyResponse
	}
	if len(p.Dates) != len(p.Prices) {
		return nil, fmt.Errorf("%w: %d dates for %d prices", model.ErrMalformedResponse, len(p.Dates), len(p.Prices))
	}
	return &model.Series{
		Symbol:   symbol,
		Range:    rng,
		Interval: interval,
		Dates:    p.Dates,
		Prices:   p.Prices,
		Info:     p.Info,
	}, nil
}

// do issues one request. Non-2xx responses become *model.ServiceError when
// the body carries {"error": "..."}, otherwise they wrap model.ErrTransport.
func (c *Client) do(ctx context.Context, method, path, token string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", model.ErrTransport, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.Logger.With(
		zap.String("method", method),
		zap.String("path", req.URL.Path),
		zap.String("request_id", reqID),
		zap.Bool("authenticated", token != ""),
	)
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s %s: %v", model.ErrTransport, method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", model.ErrTransport, err)
	}
	log.Debug("request done", zap.Int("status", resp.StatusCode), zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ep errorPayload
		if json.Unmarshal(body, &ep) == nil && ep.Error != "" {
			return nil, &model.ServiceError{Status: resp.StatusCode, Message: ep.Error}
		}
		return nil, fmt.Errorf("%w: %s %s: status %d", model.ErrTransport, method, req.URL.Path, resp.StatusCode)
	}
	return body, nil
}

// decode unmarshals a JSON body into v. An empty body leaves v untouched so
// callers can detect absence through a nil pointer.
func decode(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", model.ErrMalformedResponse, err)
	}
	return nil
}
