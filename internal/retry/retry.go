package retry

import (
	"context"
	"errors"
	"math"
	"net"
	"time"

	"transcriptify/models"
)

// Config controls retry behavior for calls to external collaborators.
type Config struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
	// Retriable overrides the default transient-failure predicate.
	Retriable func(error) bool
}

// DefaultConfig matches the backoff the upstream quotas tolerate.
var DefaultConfig = Config{
	MaxRetries:  3,
	InitialWait: 500 * time.Millisecond,
	MaxWait:     10 * time.Second,
	Multiplier:  2.0,
}

// Do retries fn up to MaxRetries times with exponential backoff.
// Non-retriable errors and context cancellation return immediately.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	retriable := cfg.Retriable
	if retriable == nil {
		retriable = IsRetriable
	}

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retriable(err) {
			return zero, err
		}

		if attempt < cfg.MaxRetries {
			wait := time.Duration(float64(cfg.InitialWait) * math.Pow(cfg.Multiplier, float64(attempt)))
			if wait > cfg.MaxWait {
				wait = cfg.MaxWait
			}
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}
	}
	return zero, lastErr
}

// IsRetriable reports whether err is a transient failure worth retrying:
// rate limits, 5xx-class upstream failures, and network-level errors.
// Validation failures and missing captions are terminal.
func IsRetriable(err error) bool {
	var rateErr *models.RateLimitedError
	if errors.As(err, &rateErr) {
		return true
	}

	var upErr *models.UpstreamError
	if errors.As(err, &upErr) {
		return upErr.Retriable()
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
