package connector

import (
	"context"
	"time"
)

// retryConnect calls connectFn up to MaxRetries times (at least once),
// sleeping BaseDelay between attempts and multiplying the delay by Backoff
// (default 2) up to MaxDelay.
func retryConnect(
	ctx context.Context,
	opts RetryConfig,
	connectFn func(context.Context) (Connection, error),
	onFailure func(attempt int, err error),
) (Connection, error) {
	attempts := opts.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	delay := opts.BaseDelay
	if delay <= 0 {
		delay = time.Second
	}
	factor := opts.Backoff
	if factor < 1 {
		factor = 2
	}

	var err error
	for i := 1; i <= attempts; i++ {
		var conn Connection
		conn, err = connectFn(ctx)
		if err == nil {
			return conn, nil
		}
		if onFailure != nil {
			onFailure(i, err)
		}
		if i == attempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * factor)
		if opts.MaxDelay > 0 && delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}
	}
	return nil, err
}
