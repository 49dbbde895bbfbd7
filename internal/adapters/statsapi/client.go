// Package statsapi is a minimal client for the MLB Stats API play-by-play
// endpoint.
package statsapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/mlbspray/internal/domain/model"
	"github.com/okian/mlbspray/pkg/logger"
	"github.com/okian/mlbspray/pkg/metrics"
)

// Defaults.
const (
	DefaultBaseURL   = "https://statsapi.mlb.com"
	DefaultUserAgent = "mlbspray/1.0"
	DefaultTimeout   = 30 * time.Second
	DefaultMaxBody   = 32 << 20
)

// Client fetches play-by-play documents over HTTP.
type Client struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	maxBody   int64
	http      *http.Client
	log       logger.Logger
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		maxBody:   DefaultMaxBody,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	if c.log == nil {
		c.log = logger.Get().Named("statsapi")
	}
	return c
}

// PlayByPlayURL returns the endpoint for a game.
func (c *Client) PlayByPlayURL(gamePK int64) string {
	return fmt.Sprintf("%s/api/v1/game/%d/playByPlay", c.baseURL, gamePK)
}

// PlayByPlay fetches and decodes one game's play-by-play. The returned
// document keeps the verbatim response body in Raw.
func (c *Client) PlayByPlay(ctx context.Context, gamePK int64) (*model.GameDocument, error) {
	if gamePK <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGamePK, gamePK)
	}
	url := c.PlayByPlayURL(gamePK)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordErrorByComponent("statsapi", "transport")
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		metrics.RecordErrorByComponent("statsapi", "status")
		return nil, fmt.Errorf("%w: %d for game %d", ErrUnexpectedStatus, resp.StatusCode, gamePK)
	}
	if resp.ContentLength > c.maxBody {
		metrics.RecordErrorByComponent("statsapi", "too_large")
		return nil, fmt.Errorf("%w: content-length %d > %d", ErrBodyTooLarge, resp.ContentLength, c.maxBody)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		metrics.RecordErrorByComponent("statsapi", "read")
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	if int64(len(body)) > c.maxBody {
		metrics.RecordErrorByComponent("statsapi", "too_large")
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.maxBody)
	}
	metrics.RecordFetchLatency(time.Since(start).Seconds())

	doc, err := model.DecodeGameDocument(body)
	if err != nil {
		metrics.RecordErrorByComponent("statsapi", "decode")
		return nil, fmt.Errorf("%w: game %d: %w", ErrDecode, gamePK, err)
	}

	c.log.Debug(ctx, "play-by-play fetched",
		logger.Int64("game_pk", gamePK),
		logger.Int("bytes", len(body)),
		logger.Int("plays", len(doc.AllPlays)),
	)
	return doc, nil
}
