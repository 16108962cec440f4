package export

import (
	"encoding/json"
	"sort"
)

// EncodeDocument renders the final export document: the items' raw
// payloads as a pretty-printed JSON array. Items are sorted by id
// first so the document is deterministic regardless of the order in
// which fetches completed.
func EncodeDocument(items []Item) ([]byte, error) {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	payloads := make([]json.RawMessage, 0, len(sorted))
	for _, it := range sorted {
		payloads = append(payloads, it.Payload)
	}

	return json.MarshalIndent(payloads, "", "  ")
}
