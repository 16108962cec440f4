package export

import "fmt"

// ProviderError reports a failure at the vault tool boundary: the
// subprocess exited unsuccessfully, its output did not decode, or the
// listing had the wrong shape.
type ProviderError struct {
	// Op is the logical operation that failed: "list" or "get".
	Op string
	// ID is the item id for get failures; empty for list failures.
	ID string
	// Err is the underlying cause.
	Err error
}

func (e *ProviderError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("provider %s %q: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ValidationError reports a fetched payload that failed the structural
// check configured on the fetcher. It aborts the run like a fetch
// failure does.
type ValidationError struct {
	ID  string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payload for item %q: %v", e.ID, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// PoolError reports a fetch worker that terminated abnormally. It is
// distinct from data errors: a run cannot be reported as successful if
// a worker died, even when every observed result was fine.
type PoolError struct {
	// Value is the recovered panic value.
	Value any
}

func (e *PoolError) Error() string {
	return fmt.Sprintf("fetch worker crashed: %v", e.Value)
}
