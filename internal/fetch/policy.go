package fetch

import (
	"math"
	"time"
)

const (
	imageMaxAttempts = 5
	imageBaseDelay   = 500 * time.Millisecond
)

// Policy bounds how often and how patiently a request is retried.
type Policy struct {
	// MaxAttempts counts every request, the first one included. Values below 1 mean 1.
	MaxAttempts int
	// BaseDelay is the pause after the first failure; each later pause doubles it.
	BaseDelay time.Duration
}

// ImagePolicy is the cover download policy: 5 attempts, 500ms doubling.
func ImagePolicy() Policy {
	return Policy{MaxAttempts: imageMaxAttempts, BaseDelay: imageBaseDelay}
}

// NoRetry issues exactly one request and reports its failure.
func NoRetry() Policy {
	return Policy{MaxAttempts: 1}
}

// Attempts returns the effective attempt budget.
func (p Policy) Attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Backoff returns the pause taken after failed attempt k (1-based), before
// attempt k+1: BaseDelay * 2^(k-1), saturating at the largest Duration.
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 1 || p.BaseDelay <= 0 {
		return 0
	}
	shift := uint(attempt - 1)
	if shift >= 63 || p.BaseDelay > time.Duration(math.MaxInt64>>shift) {
		return time.Duration(math.MaxInt64)
	}
	return p.BaseDelay << shift
}
