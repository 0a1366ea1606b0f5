package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"

	"animelib/internal/logging"
)

const defaultTimeout = 30 * time.Second

// Notifier receives one short human-readable line per failed attempt.
type Notifier func(message string)

// Fetcher performs GET requests under a retry Policy.
type Fetcher struct {
	policy     Policy
	httpClient *http.Client
	logger     *slog.Logger
	notify     Notifier
	timer      retry.Timer
	userAgent  string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// WithLogger sets the structured logger used for attempt failures.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithNotifier reports failed attempts to an operator-visible stream.
func WithNotifier(notify Notifier) Option {
	return func(f *Fetcher) {
		f.notify = notify
	}
}

// WithTimer replaces the clock used between attempts. Tests use it to skip
// real sleeps and record the requested delays.
func WithTimer(timer retry.Timer) Option {
	return func(f *Fetcher) {
		if timer != nil {
			f.timer = timer
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(agent string) Option {
	return func(f *Fetcher) {
		f.userAgent = agent
	}
}

// New creates a Fetcher applying policy to every request.
func New(policy Policy, opts ...Option) *Fetcher {
	f := &Fetcher{
		policy:     policy,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.NewNop(),
		userAgent:  "animelib/dev",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Policy returns the retry policy this fetcher applies.
func (f *Fetcher) Policy() Policy {
	return f.policy
}

// Fetch GETs url and returns the response body of the first 2xx response.
// Transport errors and non-2xx statuses are retried per the policy; request
// construction and body read failures are not.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	attempts := f.policy.Attempts()
	var (
		body       []byte
		attempt    int
		lastStatus int
	)

	err := retry.Do(
		func() error {
			attempt++
			payload, status, err := f.do(ctx, url)
			if err == nil {
				body = payload
				return nil
			}
			lastStatus = status
			f.reportFailure(url, attempt, status, err)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.DelayType(f.backoffDelay()),
		retry.LastErrorOnly(true),
		retry.WithTimer(f.timerOrDefault()),
	)
	if err == nil {
		return body, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if attempt < attempts {
		// Stopped early by an unrecoverable error.
		return nil, err
	}
	return nil, &RetriesExhaustedError{URL: url, Attempts: attempt, StatusCode: lastStatus, Err: err}
}

func (f *Fetcher) do(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, retry.Unrecoverable(fmt.Errorf("build request: %w", err))
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	requestStart := time.Now()
	resp, err := f.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, 0, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, &StatusError{StatusCode: resp.StatusCode}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, retry.Unrecoverable(fmt.Errorf("read response body: %w", err))
	}
	return payload, resp.StatusCode, nil
}

func (f *Fetcher) reportFailure(url string, attempt, status int, err error) {
	f.logger.Warn("request attempt failed",
		logging.Args(
			logging.String(logging.FieldURL, url),
			logging.Int(logging.FieldAttempt, attempt),
			logging.Int("max_attempts", f.policy.Attempts()),
			logging.Int("status", status),
			logging.Error(err),
		)...,
	)
	if f.notify == nil {
		return
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		f.notify(fmt.Sprintf("Bad Response %d", statusErr.StatusCode))
		return
	}
	f.notify(fmt.Sprintf("Error %v", err))
}

// backoffDelay ignores retry-go's own attempt counter and numbers the pauses
// itself, so the first pause is always BaseDelay.
func (f *Fetcher) backoffDelay() retry.DelayTypeFunc {
	pauses := 0
	return func(_ uint, _ error, _ *retry.Config) time.Duration {
		pauses++
		return f.policy.Backoff(pauses)
	}
}

func (f *Fetcher) timerOrDefault() retry.Timer {
	if f.timer != nil {
		return f.timer
	}
	return realTimer{}
}

type realTimer struct{}

func (realTimer) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
