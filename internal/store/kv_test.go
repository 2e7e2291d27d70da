package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKV_RoundTrip(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("chat_history_a@x.com", `[{"id":"s1"}]`))
	value, ok, err := kv.Get("chat_history_a@x.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"s1"}]`, value)

	require.NoError(t, kv.Delete("chat_history_a@x.com"))
	_, ok, err = kv.Get("chat_history_a@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is fine.
	require.NoError(t, kv.Delete("missing"))
}

func TestFileKV_KeysCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(filepath.Join(dir, "storage"))
	require.NoError(t, err)

	require.NoError(t, kv.Set("../escape", "value"))
	value, ok, err := kv.Get("../escape")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value", value)
}

func TestMemoryKV_RoundTrip(t *testing.T) {
	kv := NewMemoryKV()

	require.NoError(t, kv.Set("k", "v"))
	value, ok, err := kv.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", value)

	require.NoError(t, kv.Delete("k"))
	_, ok, _ = kv.Get("k")
	assert.False(t, ok)
}
