package export

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// RetryProvider decorates a Provider with bounded, jittered retries on
// GetItem. ListIDs passes through untouched: listing happens once per
// run and a listing failure is fatal.
//
// The wait before retry k is drawn uniformly from [k*base, (k+1)*base),
// so backoff grows with the attempt number while jitter keeps workers
// from retrying in lockstep. On the final failure the last error is
// returned unmodified.
type RetryProvider struct {
	inner        Provider
	attempts     int
	base         time.Duration
	disableSleep bool
	logger       *zap.Logger
}

// NewRetryProvider wraps inner with the retry policy from cfg.
func NewRetryProvider(inner Provider, cfg Config, logger *zap.Logger) *RetryProvider {
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &RetryProvider{
		inner:        inner,
		attempts:     attempts,
		base:         time.Duration(cfg.BackoffBaseMS) * time.Millisecond,
		disableSleep: cfg.DisableBackoffSleep,
		logger:       logger,
	}
}

func (p *RetryProvider) ListIDs(ctx context.Context) ([]string, error) {
	return p.inner.ListIDs(ctx)
}

func (p *RetryProvider) GetItem(ctx context.Context, id string) (json.RawMessage, error) {
	for attempt := 1; ; attempt++ {
		body, err := p.inner.GetItem(ctx, id)
		if err == nil {
			return body, nil
		}

		if attempt >= p.attempts {
			return nil, err
		}

		backoff := p.backoff(attempt)

		if p.disableSleep {
			// Retries still execute so the code path stays covered;
			// only the sleep itself is skipped.
			p.logger.Info("get item: would have backed off",
				zap.String("id", id),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff))
			continue
		}

		p.logger.Info("get item: backing off",
			zap.String("id", id),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			return nil, err
		case <-time.After(backoff):
		}
	}
}

// backoff draws the wait after the given attempt uniformly from
// [attempt*base, (attempt+1)*base).
func (p *RetryProvider) backoff(attempt int) time.Duration {
	if p.base <= 0 {
		return 0
	}
	return time.Duration(attempt)*p.base + time.Duration(rand.Int64N(int64(p.base)))
}
