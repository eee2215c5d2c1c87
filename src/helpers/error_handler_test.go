package helpers

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// -----------------------------------------------------------------------------

func TestTrackerErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{TrackerError{Message: "fetch failed", Cause: cause}}

	if got := err.Error(); got != "fetch failed: connection refused" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through the wrapper to the cause")
	}

	var netErr *NetworkError
	if !errors.As(fmt.Errorf("outer: %w", err), &netErr) {
		t.Error("errors.As should find NetworkError through further wrapping")
	}
}

func TestErrorTypesAreDistinct(t *testing.T) {
	err := error(&DatabaseError{TrackerError{Message: "write failed"}})

	var dbErr *DatabaseError
	if !errors.As(err, &dbErr) {
		t.Error("DatabaseError should match itself")
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		t.Error("DatabaseError must not match NetworkError")
	}
}

// -----------------------------------------------------------------------------

func TestIsNoNetworkNoCache(t *testing.T) {
	err := NewNoNetworkNoCacheError()

	if !IsNoNetworkNoCache(err) {
		t.Error("canonical instance should be recognized")
	}
	if !IsNoNetworkNoCache(fmt.Errorf("refresh: %w", err)) {
		t.Error("wrapped instance should be recognized")
	}
	if IsNoNetworkNoCache(errors.New("something else")) {
		t.Error("unrelated error should not be recognized")
	}
	if IsNoNetworkNoCache(nil) {
		t.Error("nil should not be recognized")
	}
}

// -----------------------------------------------------------------------------

func TestRetryWithBackoff(t *testing.T) {
	t.Run("succeeds without retrying", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff("op", 3, time.Millisecond, func() error {
			calls++
			return nil
		})
		if err != nil || calls != 1 {
			t.Errorf("err=%v calls=%d, want nil and 1", err, calls)
		}
	})

	t.Run("recovers on a later attempt", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff("op", 3, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		if err != nil || calls != 3 {
			t.Errorf("err=%v calls=%d, want nil and 3", err, calls)
		}
	})

	t.Run("gives up and keeps the last cause", func(t *testing.T) {
		cause := errors.New("still broken")
		calls := 0
		err := RetryWithBackoff("op", 3, time.Millisecond, func() error {
			calls++
			return cause
		})
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
		if err == nil || !errors.Is(err, cause) {
			t.Errorf("final error %v should wrap the last cause", err)
		}
	})
}
