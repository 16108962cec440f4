package export

import (
	"context"
	"encoding/json"
)

// Provider is the narrow contract the pipeline needs from the vault
// tool: enumerate all item ids, and fetch one item's body by id.
//
// ListIDs is called exactly once per run and is never retried; any
// failure is fatal to the run. GetItem must be safe to call
// concurrently from multiple workers.
type Provider interface {
	ListIDs(ctx context.Context) ([]string, error)
	GetItem(ctx context.Context, id string) (json.RawMessage, error)
}

// Item is one exported item: its id and the raw payload the provider
// returned for it. Immutable once constructed; ownership transfers
// from worker to aggregation loop, never shared.
type Item struct {
	ID      string
	Payload json.RawMessage
}
