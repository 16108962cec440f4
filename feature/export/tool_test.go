package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTool materializes a fake vault CLI as an executable script.
func writeTool(t *testing.T, body string) *ToolProvider {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tool")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o700))

	return NewToolProvider(path)
}

func TestToolListIDs(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []string
		errMsg string
	}{
		{
			name:   "Empty",
			script: "#!/bin/sh\necho '[]'",
			want:   []string{},
		},
		{
			name:   "OneItem",
			script: "#!/bin/sh\necho '[{\"id\": \"value\"}]'",
			want:   []string{"value"},
		},
		{
			name:   "TwoItems",
			script: "#!/bin/sh\necho '[{\"id\": \"value1\"}, {\"id\": \"value2\"}]'",
			want:   []string{"value1", "value2"},
		},
		{
			name:   "NotJSON",
			script: "#!/bin/sh\necho 'this is not json'",
			errMsg: "expected a JSON list",
		},
		{
			name:   "NotObjects",
			script: "#!/bin/sh\necho '[1, 2]'",
			errMsg: "not an object",
		},
		{
			name:   "MissingIDKey",
			script: "#!/bin/sh\necho '[{\"name\": \"value\"}]'",
			errMsg: "no id key",
		},
		{
			name:   "IDNotString",
			script: "#!/bin/sh\necho '[{\"id\": 7}]'",
			errMsg: "not a string",
		},
		{
			name:   "ExitFailure",
			script: "#!/bin/sh\necho oops >&2\nexit 1",
			errMsg: "exited unsuccessfully",
		},
		{
			name:   "Killed",
			script: "#!/bin/sh\nkill -9 $$",
			errMsg: "exited unsuccessfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := writeTool(t, tt.script)

			ids, err := provider.ListIDs(context.Background())
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)

				var perr *ProviderError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, "list", perr.Op)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestToolListIDsArguments(t *testing.T) {
	provider := writeTool(t, `#!/bin/sh
if [ "$1" = "items" ] && [ "$2" = "list" ] && [ "$3" = "--format=json" ] && [ -z "$4" ]; then
  echo '[]'
else
  exit 1
fi`)

	ids, err := provider.ListIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestToolGetItem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		provider := writeTool(t, "#!/bin/sh\necho '{\"key\": \"value\"}'")

		body, err := provider.GetItem(context.Background(), "id1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"key": "value"}`, string(body))
	})

	t.Run("ExitFailureCarriesOutput", func(t *testing.T) {
		provider := writeTool(t, "#!/bin/sh\necho 'not found' >&2\nexit 1")

		_, err := provider.GetItem(context.Background(), "id1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
		assert.Contains(t, err.Error(), "exit status 1")

		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "get", perr.Op)
		assert.Equal(t, "id1", perr.ID)
	})

	t.Run("NotJSON", func(t *testing.T) {
		provider := writeTool(t, "#!/bin/sh\necho 'garbage'")

		_, err := provider.GetItem(context.Background(), "id1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid JSON")
	})

	t.Run("Killed", func(t *testing.T) {
		provider := writeTool(t, "#!/bin/sh\nkill -9 $$")

		_, err := provider.GetItem(context.Background(), "id1")
		assert.Error(t, err)
	})
}

func TestToolGetItemArguments(t *testing.T) {
	provider := writeTool(t, `#!/bin/sh
if [ "$1" = "items" ] && [ "$2" = "get" ] && [ "$3" = "--format=json" ] && [ "$4" = "id1" ] && [ -z "$5" ]; then
  echo '{}'
else
  exit 1
fi`)

	body, err := provider.GetItem(context.Background(), "id1")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(body))
}

func TestToolMissingBinary(t *testing.T) {
	provider := NewToolProvider(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := provider.ListIDs(context.Background())
	require.Error(t, err)

	var perr *ProviderError
	assert.True(t, errors.As(err, &perr))

	// The spawn failure itself must survive in the message; env exits
	// 127 when the command cannot be found.
	assert.Contains(t, err.Error(), "exit status 127")
}
