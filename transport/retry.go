package transport

import (
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	defaultRetryInitialInterval = time.Second
	defaultRetryMaxInterval     = 30 * time.Second
	defaultMaxRetries           = 3
)

// RetryPolicy retries transient server-side statuses and transport failures
// with exponential backoff. It is a transport policy only: no idempotency
// key is attached, so a retried mutating call is not exactly-once.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	// Negative disables retries.
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// RetryableStatuses defaults to 429, 500, 502, 503, 504.
	RetryableStatuses []int
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      defaultMaxRetries,
		InitialInterval: defaultRetryInitialInterval,
		MaxInterval:     defaultRetryMaxInterval,
	}
}

func (p RetryPolicy) maxAttempts() uint {
	if p.MaxRetries < 0 {
		return 1
	}
	return uint(p.MaxRetries) + 1
}

func (p RetryPolicy) retryableStatus(statusCode int) bool {
	statuses := p.RetryableStatuses
	if len(statuses) == 0 {
		statuses = []int{429, 500, 502, 503, 504}
	}
	for _, candidate := range statuses {
		if candidate == statusCode {
			return true
		}
	}
	return false
}

func (p RetryPolicy) backOff() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		policy.InitialInterval = p.InitialInterval
	} else {
		policy.InitialInterval = defaultRetryInitialInterval
	}
	if p.MaxInterval > 0 {
		policy.MaxInterval = p.MaxInterval
	} else {
		policy.MaxInterval = defaultRetryMaxInterval
	}
	return policy
}
