package helpers

import (
	"errors"
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type TrackerError struct {
	Message string
	Cause   error
}

func (e *TrackerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TrackerError) Unwrap() error {
	return e.Cause
}

// Distinct error types for type assertions where the policy differs
type ConfigurationError struct{ TrackerError }
type NetworkError struct{ TrackerError }
type DatabaseError struct{ TrackerError }
type ValidationError struct{ TrackerError }

// SummaryFetchError marks a hard failure of the all-or-nothing batch
// summary call. Falling back to cache is the orchestrator's decision.
type SummaryFetchError struct{ TrackerError }

// -----------------------------------------------------------------------------

// NoNetworkNoCacheError is the only orchestrator failure that must reach the
// caller as a blocking error: no connectivity and nothing cached to serve.
type NoNetworkNoCacheError struct{ TrackerError }

// NewNoNetworkNoCacheError builds the canonical instance.
func NewNoNetworkNoCacheError() *NoNetworkNoCacheError {
	return &NoNetworkNoCacheError{TrackerError{Message: "no internet connection and no cached data available"}}
}

// IsNoNetworkNoCache reports whether err is (or wraps) the hard offline failure.
func IsNoNetworkNoCache(err error) bool {
	var target *NoNetworkNoCacheError
	return errors.As(err, &target)
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// RetryWithBackoff attempts the operation up to maxRetries times with
// exponential backoff between attempts.
func RetryWithBackoff(operation string, maxRetries int, baseDelay time.Duration, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if attempt == maxRetries-1 {
			break
		}

		delay := baseDelay * (1 << attempt)
		time.Sleep(delay)
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operation, maxRetries, lastErr)
}
