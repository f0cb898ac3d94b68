package enrich

import (
	"context"
	"log"
	"time"
)

// Logf is the logging hook used by LoggingProvider. Matches
// log.Printf.
type Logf func(format string, args ...any)

// LoggingProvider is a decorator that logs every LLM request with
// latency, token usage, and estimated cost.
type LoggingProvider struct {
	inner Provider
	logf  Logf
}

// WithLogging wraps a Provider with request logging. A nil logf
// defaults to log.Printf.
func WithLogging(p Provider, logf Logf) Provider {
	if logf == nil {
		logf = log.Printf
	}
	return &LoggingProvider{inner: p, logf: logf}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	if err != nil {
		l.logf("llm request failed: purpose=%s model=%s latency=%s err=%v",
			purpose, l.inner.ModelID(), latency.Round(time.Millisecond), err)
		return nil, err
	}

	if cost := LookupCost(resp.Model); cost != nil {
		l.logf("llm request: purpose=%s model=%s latency=%s tokens=%d/%d cost=$%.6f",
			purpose, resp.Model, latency.Round(time.Millisecond),
			resp.Usage.InputTokens, resp.Usage.OutputTokens,
			cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens))
	} else {
		l.logf("llm request: purpose=%s model=%s latency=%s tokens=%d/%d",
			purpose, resp.Model, latency.Round(time.Millisecond),
			resp.Usage.InputTokens, resp.Usage.OutputTokens)
	}

	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
