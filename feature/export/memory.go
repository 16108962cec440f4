package export

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// MemoryProvider is a deterministic in-memory Provider used by tests.
// Ids present in Errs always fail with the configured error; every
// other id must be present in Items. Both maps are read-only after
// construction, so the provider is safe for concurrent use.
type MemoryProvider struct {
	Items map[string]json.RawMessage
	Errs  map[string]error
}

// ListIDs returns every known id, sorted for stable output.
func (p *MemoryProvider) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(p.Items)+len(p.Errs))
	for id := range p.Items {
		ids = append(ids, id)
	}
	for id := range p.Errs {
		if _, dup := p.Items[id]; !dup {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (p *MemoryProvider) GetItem(ctx context.Context, id string) (json.RawMessage, error) {
	if err, ok := p.Errs[id]; ok {
		return nil, err
	}
	body, ok := p.Items[id]
	if !ok {
		return nil, fmt.Errorf("no item %q", id)
	}
	return body, nil
}
