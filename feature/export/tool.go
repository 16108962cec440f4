package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

// ToolProvider implements Provider by invoking the vault CLI as a
// subprocess. It holds no mutable state, so one instance is safe to
// share across all fetch workers.
type ToolProvider struct {
	command string
}

// NewToolProvider creates a provider backed by the given CLI binary
// (a name resolved via PATH, or an absolute path).
func NewToolProvider(command string) *ToolProvider {
	return &ToolProvider{command: command}
}

// run executes the tool with the given arguments and returns its
// stdout. A non-zero exit reports both captured streams so the
// failure is diagnosable upstream.
func (p *ToolProvider) run(ctx context.Context, args ...string) ([]byte, error) {
	argv := append([]string{p.command}, args...)
	cmd := exec.CommandContext(ctx, "/usr/bin/env", argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s exited unsuccessfully: %w: stdout: %s stderr: %s",
			p.command, err, stdout.String(), stderr.String())
	}

	return stdout.Bytes(), nil
}

// ListIDs runs `<tool> items list --format=json` and extracts the id
// of every listed item. The output must be a JSON array of objects,
// each carrying a string "id" field.
func (p *ToolProvider) ListIDs(ctx context.Context) ([]string, error) {
	out, err := p.run(ctx, "items", "list", "--format=json")
	if err != nil {
		return nil, &ProviderError{Op: "list", Err: err}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(out, &entries); err != nil {
		return nil, &ProviderError{Op: "list",
			Err: fmt.Errorf("expected a JSON list from 'items list': %w", err)}
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(entry, &obj); err != nil {
			return nil, &ProviderError{Op: "list",
				Err: fmt.Errorf("listed item is not an object: %w", err)}
		}

		rawID, ok := obj["id"]
		if !ok {
			return nil, &ProviderError{Op: "list",
				Err: fmt.Errorf("listed item has no id key")}
		}

		var id string
		if err := json.Unmarshal(rawID, &id); err != nil {
			return nil, &ProviderError{Op: "list",
				Err: fmt.Errorf("listed item's id is not a string: %w", err)}
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// GetItem runs `<tool> items get --format=json <id>` and returns the
// item body. The body must parse as JSON; beyond that it is opaque.
func (p *ToolProvider) GetItem(ctx context.Context, id string) (json.RawMessage, error) {
	out, err := p.run(ctx, "items", "get", "--format=json", id)
	if err != nil {
		return nil, &ProviderError{Op: "get", ID: id, Err: err}
	}

	body := bytes.TrimSpace(out)
	if !json.Valid(body) {
		return nil, &ProviderError{Op: "get", ID: id,
			Err: fmt.Errorf("tool output is not valid JSON")}
	}

	return json.RawMessage(body), nil
}
