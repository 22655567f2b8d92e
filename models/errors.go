package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoTranscript signals the expected absence of captions for a video.
// It is a per-video terminal failure, never retried.
var ErrNoTranscript = errors.New("no transcript available for video")

// ValidationError marks user-correctable input problems rejected before
// any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UpstreamError wraps a failure of one of the external collaborators
// (video catalog, transcript source, summarization API). StatusCode is
// zero when the failure was not an HTTP status.
type UpstreamError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: upstream returned %d: %v", e.Service, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Retriable reports whether the failure is transient (5xx-class or 429).
func (e *UpstreamError) Retriable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// RateLimitedError indicates the upstream asked us to back off.
type RateLimitedError struct {
	Service    string
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s: rate limited", e.Service)
}
