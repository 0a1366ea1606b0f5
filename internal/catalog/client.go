package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"animelib/internal/fetch"
	"animelib/internal/logging"
)

const (
	// ProbeLimit is the result count requested for the fast-path lookup.
	ProbeLimit = 1
	// CandidateLimit is the result count offered to the operator.
	CandidateLimit = 5

	defaultRequestsPerSecond = 2.5
	defaultTimeout           = 10 * time.Second
)

// Client issues catalog queries.
type Client struct {
	baseURL     string
	fetcher     *fetch.Fetcher
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithFetcher replaces the single-attempt fetcher built by New.
func WithFetcher(fetcher *fetch.Fetcher) Option {
	return func(c *Client) {
		if fetcher != nil {
			c.fetcher = fetcher
		}
	}
}

// WithRateLimit caps outgoing requests per second. Non-positive values
// disable the limiter.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.rateLimiter = nil
			return
		}
		c.rateLimiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a catalog client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), 1),
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.fetcher == nil {
		client.fetcher = fetch.New(fetch.NoRetry(),
			fetch.WithHTTPClient(client.httpClient),
			fetch.WithLogger(client.logger),
		)
	}
	return client, nil
}

// Search returns up to limit candidates for query in catalog rank order.
// A single request is made; every failure is a *SearchError.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Anime, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &SearchError{Query: query, Err: errors.New("query must not be empty")}
	}
	if limit < 1 {
		limit = 1
	}
	endpoint, err := url.Parse(c.baseURL + "/anime")
	if err != nil {
		return nil, &SearchError{Query: query, Err: fmt.Errorf("parse catalog url: %w", err)}
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	endpoint.RawQuery = params.Encode()

	var payload listResponse
	if err := c.get(ctx, endpoint.String(), &payload); err != nil {
		return nil, &SearchError{Query: query, Err: err}
	}
	results := payload.Data
	if len(results) > limit {
		results = results[:limit]
	}
	c.logger.Debug("catalog search",
		logging.String("query", query),
		logging.Int("limit", limit),
		logging.Int("results", len(results)),
	)
	return results, nil
}

// GetAnime fetches a single record by MyAnimeList id.
func (c *Client) GetAnime(ctx context.Context, malID int64) (*Anime, error) {
	if malID <= 0 {
		return nil, fmt.Errorf("invalid mal id %d", malID)
	}
	var payload itemResponse
	if err := c.get(ctx, fmt.Sprintf("%s/anime/%d", c.baseURL, malID), &payload); err != nil {
		return nil, fmt.Errorf("get anime %d: %w", malID, err)
	}
	if payload.Data.MalID == 0 {
		return nil, fmt.Errorf("get anime %d: empty response", malID)
	}
	return &payload.Data, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}
	body, err := c.fetcher.Fetch(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
