package export

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flakyProvider fails GetItem until succeedOn is reached (0 = never).
type flakyProvider struct {
	succeedOn int64
	gets      atomic.Int64
	lists     atomic.Int64
	err       error
}

func (p *flakyProvider) ListIDs(ctx context.Context) ([]string, error) {
	p.lists.Add(1)
	return nil, errors.New("list not supported")
}

func (p *flakyProvider) GetItem(ctx context.Context, id string) (json.RawMessage, error) {
	n := p.gets.Add(1)
	if p.succeedOn > 0 && n >= p.succeedOn {
		return json.RawMessage(`{"id": "` + id + `"}`), nil
	}
	return nil, p.err
}

func retryConfig() Config {
	return Config{
		RetryAttempts:       5,
		BackoffBaseMS:       10,
		DisableBackoffSleep: true,
	}
}

func TestRetryExhausted(t *testing.T) {
	cause := errors.New("boom")
	provider := &flakyProvider{err: cause}
	retrying := NewRetryProvider(provider, retryConfig(), zap.NewNop())

	_, err := retrying.GetItem(context.Background(), "id1")
	require.Error(t, err)
	assert.Same(t, cause, err, "the last error must be returned unmodified")
	assert.EqualValues(t, 5, provider.gets.Load(), "exactly the attempt budget, no more")
}

func TestRetryEventualSuccess(t *testing.T) {
	provider := &flakyProvider{succeedOn: 3, err: errors.New("transient")}
	retrying := NewRetryProvider(provider, retryConfig(), zap.NewNop())

	body, err := retrying.GetItem(context.Background(), "id1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "id1"}`, string(body))
	assert.EqualValues(t, 3, provider.gets.Load())
}

func TestRetryFirstTrySuccess(t *testing.T) {
	provider := &flakyProvider{succeedOn: 1}
	retrying := NewRetryProvider(provider, retryConfig(), zap.NewNop())

	_, err := retrying.GetItem(context.Background(), "id1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, provider.gets.Load())
}

func TestRetryListingNotRetried(t *testing.T) {
	provider := &flakyProvider{err: errors.New("boom")}
	retrying := NewRetryProvider(provider, retryConfig(), zap.NewNop())

	_, err := retrying.ListIDs(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 1, provider.lists.Load(), "listing passes through untouched")
}

func TestRetryCancelledContext(t *testing.T) {
	cause := errors.New("boom")
	provider := &flakyProvider{err: cause}

	cfg := retryConfig()
	cfg.DisableBackoffSleep = false
	cfg.BackoffBaseMS = 60_000
	retrying := NewRetryProvider(provider, cfg, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := retrying.GetItem(ctx, "id1")
	require.Error(t, err)
	assert.Same(t, cause, err)
	assert.Less(t, time.Since(start), time.Second, "cancellation must abort the backoff sleep")
}

func TestBackoffWindow(t *testing.T) {
	cfg := retryConfig()
	cfg.BackoffBaseMS = 1000
	retrying := NewRetryProvider(&flakyProvider{}, cfg, zap.NewNop())

	base := time.Duration(cfg.BackoffBaseMS) * time.Millisecond
	for attempt := 1; attempt <= 4; attempt++ {
		for i := 0; i < 100; i++ {
			d := retrying.backoff(attempt)
			assert.GreaterOrEqual(t, d, time.Duration(attempt)*base)
			assert.Less(t, d, time.Duration(attempt+1)*base)
		}
	}
}

func TestBackoffZeroBase(t *testing.T) {
	cfg := retryConfig()
	cfg.BackoffBaseMS = 0
	retrying := NewRetryProvider(&flakyProvider{}, cfg, zap.NewNop())

	assert.Equal(t, time.Duration(0), retrying.backoff(1))
}
