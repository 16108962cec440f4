package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// fetchResult carries one dequeued id's outcome from a worker to the
// aggregation loop. Exactly one is produced per id a worker dequeues.
type fetchResult struct {
	item Item
	err  error
}

// Fetcher fans a run's item ids out to a fixed pool of workers and
// collects the fetched bodies, aborting on the first failure.
type Fetcher struct {
	provider Provider
	workers  int
	interval time.Duration
	validate func(Item) error
	logger   *zap.Logger
}

// NewFetcher creates a fetcher over the given provider. The provider
// is shared read-only across all workers, so wrap it with
// NewRetryProvider before handing it in if retries are wanted.
func NewFetcher(provider Provider, cfg Config, logger *zap.Logger) *Fetcher {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	var validate func(Item) error
	if cfg.RequireObject {
		validate = requireObjectPayload
	}

	return &Fetcher{
		provider: provider,
		workers:  workers,
		interval: time.Duration(cfg.ProgressIntervalMS) * time.Millisecond,
		validate: validate,
		logger:   logger,
	}
}

// FetchAll lists all item ids once and fetches every body through the
// worker pool. It returns the full item set, in no particular order,
// or the first error encountered.
//
// On the first failed result the run context is cancelled; workers
// detect the cancellation when their next send would block and exit
// instead, so no work is wasted and nothing leaks. Partial results are
// discarded on failure. A worker crash surfaces as a *PoolError even
// when every observed result was fine.
func (f *Fetcher) FetchAll(ctx context.Context) ([]Item, error) {
	f.logger.Info("listing items to export")

	ids, err := f.provider.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	f.logger.Info("initiating fetch",
		zap.Int("total", len(ids)),
		zap.Int("workers", f.workers))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, workCtx := errgroup.WithContext(runCtx)

	// Sized to hold every id so enqueuing never blocks.
	idCh := make(chan string, len(ids))
	results := make(chan fetchResult)

	progress := NewProgress(f.logger, f.interval)
	for _, id := range ids {
		progress.Pending()
		idCh <- id
	}
	close(idCh)

	for i := 0; i < f.workers; i++ {
		g.Go(func() error {
			return f.worker(workCtx, idCh, results)
		})
	}

	items := make([]Item, 0, len(ids))
	var firstErr error

drain:
	for range ids {
		var res fetchResult
		select {
		case res = <-results:
		case <-workCtx.Done():
			// The pool died or the caller gave up; Wait reports why.
			break drain
		}

		progress.Done()

		if res.err == nil && f.validate != nil {
			res.err = f.validate(res.item)
		}
		if res.err != nil {
			firstErr = res.err
			cancel()
			break drain
		}

		items = append(items, res.item)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// worker drains the id channel, producing one result per id. A send
// that would block after the run is cancelled is abandoned along with
// the loop. Panics are contained and reported as a *PoolError so a
// crashed worker cannot take the process down or go unnoticed.
func (f *Fetcher) worker(ctx context.Context, idCh <-chan string, results chan<- fetchResult) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PoolError{Value: r}
		}
	}()

	for id := range idCh {
		body, ferr := f.provider.GetItem(ctx, id)

		res := fetchResult{err: ferr}
		if ferr == nil {
			res.item = Item{ID: id, Payload: body}
		}

		select {
		case results <- res:
		case <-ctx.Done():
			return nil
		}
	}

	return nil
}

// requireObjectPayload rejects payloads that are not JSON objects.
// The leading-token check matters: unmarshalling JSON null into a map
// succeeds without error, so null would slip through otherwise.
func requireObjectPayload(it Item) error {
	body := bytes.TrimSpace(it.Payload)
	if len(body) == 0 || body[0] != '{' {
		return &ValidationError{ID: it.ID, Err: fmt.Errorf("payload is not a JSON object")}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return &ValidationError{ID: it.ID, Err: err}
	}
	return nil
}
