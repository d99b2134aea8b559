package client

import (
	"context"
	"time"

	"github.com/okmeme/okmeme-wallet/internal/errs"
)

// RetryPolicy bounds retries of network failures. Retries is the number of
// extra attempts after the first; Backoff doubles after every attempt.
type RetryPolicy struct {
	Retries int
	Backoff time.Duration
}

// NoRetry performs a single attempt.
var NoRetry = RetryPolicy{}

// do runs fn until it succeeds, fails with a non-retryable error, the
// retries are used up or ctx is done. The last error is returned.
func (p RetryPolicy) do(ctx context.Context, onRetry func(attempt int, err error), fn func(context.Context) error) error {
	backoff := p.Backoff
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil || !errs.Retryable(err) || attempt >= p.Retries {
			return err
		}
		if onRetry != nil {
			onRetry(attempt+1, err)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
		backoff *= 2
	}
}
