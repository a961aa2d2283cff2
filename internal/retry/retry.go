package retry

import (
	"fmt"
	"time"
)

// Do calls fn until it succeeds, up to attempts times, sleeping delay
// between failures. Used for best-effort cleanup; network calls are never
// retried.
func Do(attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt < attempts-1 {
			time.Sleep(delay)
		}
	}

	return fmt.Errorf("retry: %d attempts failed: %w", attempts, err)
}
