package enrich

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrRateLimit reports a 429 from the provider. RetryAfter is honored
// by the retry decorator when the provider supplied one.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("enrichment rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse reports model output that is not valid JSON or
// does not conform to the requested schema. Content carries the raw
// output for logging.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid enrichment response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable reports that the provider is down,
// unreachable, or returned an unclassified error.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "enrichment provider unavailable"
	}
	return fmt.Sprintf("enrichment provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded reports a response truncated at the MaxTokens
// limit. Not retried: the same request would truncate again.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "enrichment response truncated: max tokens exceeded"
}
