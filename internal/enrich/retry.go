package enrich

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryProvider decorates a Provider with exponential backoff and
// jitter for transient failures.
type retryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retryProvider{inner: p, cfg: cfg}
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidRetried := false

	for attempt := range r.cfg.MaxAttempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &invalidRetried) {
			return nil, err
		}
		if attempt == r.cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.delay(attempt, err)):
		}
	}

	return nil, lastErr
}

func (r *retryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable classifies an error. Context errors and truncation are
// permanent; a schema-invalid response gets exactly one more chance;
// everything else (rate limits, outages, network) is transient.
func retryable(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	return true
}

// delay computes the wait before the next attempt. A provider-supplied
// RetryAfter takes precedence over the backoff schedule.
func (r *retryProvider) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.cfg.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1) // ±20% jitter
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
