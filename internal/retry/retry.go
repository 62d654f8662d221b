// Package retry wraps cenkalti/backoff for the opt-in retries on the storage
// fetch and the summarization call. A zero MaxRetries runs the operation
// exactly once.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// Policy configures a bounded exponential backoff.
type Policy struct {
	MaxRetries      uint64
	InitialInterval time.Duration // backoff default when zero

	// Retryable reports whether err is worth another attempt. Nil means every
	// error is retried.
	Retryable func(err error) bool
}

// Do runs op, retrying failed attempts according to p.
func Do(ctx context.Context, p Policy, log logrus.FieldLogger, op func() error) error {
	if p.MaxRetries == 0 {
		return op()
	}

	exp := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		exp.InitialInterval = p.InitialInterval
	}
	b := backoff.WithContext(backoff.WithMaxRetries(exp, p.MaxRetries), ctx)

	attempt := func() error {
		err := op()
		if err != nil && p.Retryable != nil && !p.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		if log != nil {
			log.WithError(err).WithField("wait", wait.String()).Warn("attempt failed, retrying")
		}
	}

	return backoff.RetryNotify(attempt, b, notify)
}
