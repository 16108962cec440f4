// Package history records each export run in a small audit database.
//
// A run record holds the run id, start time, duration, item count,
// outcome, and destination. History is an operator convenience: it
// never resumes a run and holds no partial fetch progress, and a
// failure to record a run must never fail the export itself (callers
// log and move on).
//
// # Drivers
//
// The default driver is sqlite, keeping history in a local file next
// to the tool. MySQL is supported for shared deployments where several
// operators export against the same vault.
//
// # Usage
//
//	store, err := history.Open(cfg)
//	_ = store.Record(ctx, &history.Run{ID: runID, Status: history.StatusOK, ...})
//	runs, err := store.Recent(ctx, 20)
package history
