// Package export implements the concurrent item fetch pipeline at the
// heart of vault-export.
//
// The vault tool exposes only two primitive operations: list all item
// ids, and fetch one item's body by id. Fetching a single item is an
// expensive, failure-prone subprocess call, so the pipeline fans ids
// out to a fixed pool of workers, retries transient fetch failures
// with jittered backoff, reports throttled progress, and aborts the
// whole run on the first unrecoverable failure while releasing all
// in-flight workers.
//
// # Components
//
//   - Provider: the narrow contract (ListIDs, GetItem) the pipeline needs.
//   - ToolProvider: subprocess-backed Provider invoking the vault CLI.
//   - MemoryProvider: deterministic in-memory Provider for tests.
//   - RetryProvider: decorator adding bounded, jittered retries to GetItem.
//   - Progress: throttled outstanding-work reporting.
//   - Fetcher: the worker pool, aggregation loop, and fail-fast wiring.
//
// # Usage
//
//	provider := export.NewRetryProvider(export.NewToolProvider("op"), cfg, log)
//	fetcher := export.NewFetcher(provider, cfg, log)
//	items, err := fetcher.FetchAll(ctx)
//	if err != nil {
//	    return err
//	}
//	doc, err := export.EncodeDocument(items)
package export
