package masaapi

import (
	"context"
	"time"

	"github.com/effective-security/xlog"
)

const (
	// DefaultMaxAttempts is the default number of attempts, including the first one
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is the delay before the second attempt,
	// doubled for each next one
	DefaultBaseDelay = time.Second
)

// RetryPolicy controls Retry
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// IsRetryable classifies errors, masaapi.IsRetryable if nil
	IsRetryable func(error) bool
	// Sleep waits between attempts, SleepContext if nil
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy returns 3 attempts with 1s and 2s delays
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		IsRetryable: IsRetryable,
		Sleep:       SleepContext,
	}
}

// Delay returns the wait before the attempt following the given one
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return p.BaseDelay << (attempt - 1)
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	if p.IsRetryable == nil {
		p.IsRetryable = IsRetryable
	}
	if p.Sleep == nil {
		p.Sleep = SleepContext
	}
	return p
}

// Retry calls fn until it succeeds, returns non-retryable error,
// or the attempts are exhausted. The last error is returned unchanged.
func Retry[T any](ctx context.Context, policy RetryPolicy, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	p := policy.normalized()

	var zero T
	for attempt := 1; ; attempt++ {
		res, err := fn(ctx, attempt)
		if err == nil {
			return res, nil
		}
		if attempt >= p.MaxAttempts || !p.IsRetryable(err) {
			return zero, err
		}

		delay := p.Delay(attempt)
		logger.ContextKV(ctx, xlog.WARNING,
			"status", "retrying",
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"delay", delay.String(),
			"err", err.Error(),
		)

		if serr := p.Sleep(ctx, delay); serr != nil {
			return zero, err
		}
	}
}

// SleepContext waits for d or until ctx is done
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
