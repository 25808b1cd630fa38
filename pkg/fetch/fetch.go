// Package fetch is the HTTP plumbing shared by the source adapters. It owns
// request timeouts, retry on transient failures, per-source latency metrics
// and the SourceUnavailableError every adapter reports.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/spencer-p/oceantrends/pkg/metrics"
)

const (
	DefaultTimeout = 30 * time.Second
	DefaultBackoff = 1 * time.Second

	// maxErrorBody bounds how much of a failed response is quoted in errors.
	maxErrorBody = 512
)

// ErrSourceUnavailable matches any SourceUnavailableError with errors.Is.
var ErrSourceUnavailable = errors.New("source unavailable")

// SourceUnavailableError reports a network or parse failure in an adapter.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Source, ErrSourceUnavailable, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

func (e *SourceUnavailableError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// Unavailable wraps err as a SourceUnavailableError for source.
func Unavailable(source string, err error) error {
	return &SourceUnavailableError{Source: source, Err: err}
}

// Getter performs GET requests with a timeout and bounded retries.
type Getter struct {
	Client  *http.Client
	Retries int
	Backoff time.Duration

	// sleep is swapped out in tests.
	sleep func(context.Context, time.Duration) error
}

// NewGetter returns a Getter whose requests time out after timeout and which
// retries transient failures up to retries more times.
func NewGetter(timeout time.Duration, retries int, backoff time.Duration) *Getter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if retries < 0 {
		retries = 0
	}
	return &Getter{
		Client:  &http.Client{Timeout: timeout},
		Retries: retries,
		Backoff: backoff,
		sleep:   sleepContext,
	}
}

// Get fetches addr and returns the body. Transport errors, 429 and 5xx
// responses are retried with linear backoff; any other non-2xx response fails
// immediately. All failures are SourceUnavailableErrors naming source.
func (g *Getter) Get(ctx context.Context, source, addr string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= g.Retries; attempt++ {
		if attempt > 0 {
			wait := g.Backoff * time.Duration(attempt)
			log.Printf("[WARN] %s: attempt %d failed (%v), retrying in %s", source, attempt, lastErr, wait)
			if err := g.sleeper()(ctx, wait); err != nil {
				return nil, Unavailable(source, err)
			}
		}

		body, retry, err := g.once(ctx, source, addr)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry {
			break
		}
	}
	return nil, Unavailable(source, lastErr)
}

// once performs a single attempt and reports whether a failure is transient.
func (g *Getter) once(ctx context.Context, source, addr string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	resp, err := g.Client.Do(req)
	if err != nil {
		metrics.ObserveFetch(source, "error", time.Since(start))
		// A cancelled context will not get better by retrying.
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()
	metrics.ObserveFetch(source, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}
	return body, false, nil
}

func (g *Getter) sleeper() func(context.Context, time.Duration) error {
	if g.sleep == nil {
		return sleepContext
	}
	return g.sleep
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
