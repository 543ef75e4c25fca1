package reply

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/diogo/aichat/internal/errors"
)

func TestParseReplies(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []string
		wantErr bool
	}{
		{"bare array", `["Hi!", "Sure."]`, []string{"Hi!", "Sure."}, false},
		{"object", `{"replies": ["One", "Two", "Three"]}`, []string{"One", "Two", "Three"}, false},
		{"skips blanks and non-strings", `["ok", "  ", 3, null, "fine"]`, []string{"ok", "fine"}, false},
		{"invalid json", `{"replies": [`, nil, true},
		{"object without replies", `{"other": []}`, nil, true},
		{"scalar", `"hello"`, nil, true},
		{"empty array", `[]`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReplies([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReplies_EmptyIsErrNoReplies(t *testing.T) {
	_, err := ParseReplies([]byte(`{"replies": ["", " "]}`))
	assert.ErrorIs(t, err, apperrors.ErrNoReplies)
}

func TestLoadReplies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "replies.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"replies": ["Привет!", "Hello!"]}`), 0o600))

	replies, err := LoadReplies(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Привет!", "Hello!"}, replies)

	_, err = LoadReplies(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
