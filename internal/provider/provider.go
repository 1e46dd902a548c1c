// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider fetches day-of-year history from the remote provider
// and builds history.RecordSet values from it.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/chronologist/internal/history"
	"github.com/pdiddy/chronologist/internal/httputil"
	"github.com/pdiddy/chronologist/pkg/types"
)

const defaultTimeout = 30 * time.Second

// Contract violations. They are returned before any request is made.
var (
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
	ErrInvalidDay   = errors.New("day must be between 1 and 31")
	ErrInvalidYear  = errors.New("year is not a recognizable year label")
)

// FetchError reports a non-2xx response from the provider.
type FetchError struct {
	Endpoint   string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("got invalid status code %d when trying to access the endpoint %s", e.StatusCode, e.Endpoint)
}

// Client is a HistorySource backed by the provider's HTTP API.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Logger  *zap.Logger
}

// New builds a Client from cfg. A nil logger disables logging.
func New(cfg types.ProviderConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := cfg.BaseURL
	if base == "" {
		base = types.DefaultBaseURL
	}
	return &Client{
		HTTP: &http.Client{
			Timeout: timeout,
			Transport: &httputil.Transport{
				UserAgent: cfg.UserAgent,
				Limiter:   httputil.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
			},
		},
		BaseURL: base,
		Logger:  logger,
	}
}

// Today fetches the provider's entries for the current day.
func (c *Client) Today(ctx context.Context) (*history.RecordSet, error) {
	return c.fetch(ctx, "date")
}

// Date fetches every entry for month/day.
func (c *Client) Date(ctx context.Context, month, day int) (*history.RecordSet, error) {
	if err := validateDate(month, day); err != nil {
		return nil, err
	}
	return c.fetch(ctx, fmt.Sprintf("date/%d/%d", month, day))
}

// DateInYear fetches month/day and keeps only the entries whose year label
// is year. year must convert with history.YearToInt.
func (c *Client) DateInYear(ctx context.Context, month, day int, year string) (*history.RecordSet, error) {
	if err := validateDate(month, day); err != nil {
		return nil, err
	}
	if _, ok := history.YearToInt(year); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidYear, year)
	}
	set, err := c.fetch(ctx, fmt.Sprintf("date/%d/%d", month, day))
	if err != nil {
		return nil, err
	}
	return set.Search(year)
}

func validateDate(month, day int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: got %d", ErrInvalidMonth, month)
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("%w: got %d", ErrInvalidDay, day)
	}
	return nil
}

// endpoint resolves path against the base URL the way a browser resolves a
// relative link.
func (c *Client) endpoint(path string) (string, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL %q: %w", c.BaseURL, err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint %q: %w", path, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func (c *Client) fetch(ctx context.Context, path string) (*history.RecordSet, error) {
	endpoint, err := c.endpoint(path)
	if err != nil {
		return nil, err
	}
	log := c.logger().With(zap.String("endpoint", endpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("history provider request: %w", err)
	}
	defer resp.Body.Close()

	log.Debug("fetched day",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("history provider rejected request", zap.Int("status", resp.StatusCode))
		return nil, &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	var payload types.DayPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parsing history provider response: %w", err)
	}

	set := history.NewRecordSet(payload)
	received := len(payload.Data.Events) + len(payload.Data.Births) + len(payload.Data.Deaths)
	if dropped := received - set.Len(); dropped > 0 {
		log.Debug("dropped entries without a usable year", zap.Int("dropped", dropped))
	}
	return set, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}
