package memmachine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/memchat/internal/config"
	"github.com/sandevgo/memchat/internal/core"
	"github.com/sandevgo/memchat/pkg/log"
	"github.com/sandevgo/memchat/pkg/retry"
)

const (
	pathMemories = "/api/v2/memories"
	pathSearch   = "/api/v2/memories/search"
	pathList     = "/api/v2/memories/list"
	pathHealth   = "/api/v2/health"

	healthTimeout = 5 * time.Second
	maxErrorBody  = 512
)

type Config struct {
	BaseURL   string
	OrgID     string
	ProjectID string
	UserID    string

	MaxAttempts int
	RetryDelay  time.Duration
	TopK        int
	PageSize    int
	Timeout     time.Duration
}

func NewConfig(c *config.MemoryConfig) Config {
	return Config{
		BaseURL:     c.ServerURL,
		OrgID:       c.OrgID,
		ProjectID:   c.ProjectID,
		UserID:      c.UserID,
		MaxAttempts: c.MaxAttempts,
		RetryDelay:  c.RetryDelay,
		TopK:        c.TopK,
		PageSize:    c.PageSize,
		Timeout:     c.RequestTimeout,
	}
}

func (c *Config) setDefaults() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 2 * time.Second
	}
	if c.TopK <= 0 {
		c.TopK = 5
	}
	if c.PageSize <= 0 {
		c.PageSize = 100
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithSleep replaces the wait between retries.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = sleep }
}

func WithNotifier(n core.Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client talks to the MemMachine v2 API on behalf of a single user. The user
// id is fixed here and injected into every write and every filter.
type Client struct {
	cfg      Config
	client   *http.Client
	retrier  *retry.Retrier
	notifier core.Notifier
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
}

func NewClient(cfg Config, opts ...Option) *Client {
	cfg.setDefaults()

	c := &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	retryCfg := retry.NewLinearConfig(cfg.MaxAttempts, cfg.RetryDelay)
	retryCfg.ShouldRetry = isRetryable
	retryCfg.Sleep = c.sleep
	c.retrier = retry.NewRetrier(retryCfg)

	return c
}

func (c *Client) UserID() string {
	return c.cfg.UserID
}

func (c *Client) ServerURL() string {
	return c.cfg.BaseURL
}

func (c *Client) scope() scope {
	return scope{OrgID: c.cfg.OrgID, ProjectID: c.cfg.ProjectID}
}

func (c *Client) filter() string {
	return fmt.Sprintf("metadata.user_id='%s'", c.cfg.UserID)
}

// post sends body to path with the retry policy and decodes the answer into
// out when out is not nil.
func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	logger := log.FromCtx(ctx).With().Str("op", op).Logger()

	attempt := 0
	err = c.retrier.Do(ctx, func() error {
		attempt++
		data, err := c.send(ctx, http.MethodPost, path, payload)
		if err != nil {
			logger.Debug().Err(err).Int("attempt", attempt).Msg("memory request failed")
			return err
		}
		if out == nil {
			return nil
		}

		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode: %w", err)
		}
		return nil
	})
	return classify(err)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", core.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}
	return data, nil
}

// warn reports a failed call to the log and to whoever is chatting.
func (c *Client) warn(ctx context.Context, what string, err error) {
	log.FromCtx(ctx).Warn().
		Err(err).
		Str("user_id", c.cfg.UserID).
		Msgf("%s failed", what)

	if c.notifier == nil {
		return
	}

	switch {
	case errors.Is(err, ErrDegraded):
		c.notifier.Warn(fmt.Sprintf("⚠ %s failed: the memory server is temporarily unavailable, continuing without it", what))
	default:
		c.notifier.Warn(fmt.Sprintf("⚠ %s failed: %v", what, err))
	}
}

// Health probes the liveness endpoint once, without retries.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if _, err := c.send(ctx, http.MethodGet, pathHealth, nil); err != nil {
		return fmt.Errorf("memory server health: %w", err)
	}
	return nil
}
