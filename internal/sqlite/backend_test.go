package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillfort/trak/pkg/types"
)

// newTestBackend attaches a backend over a temp directory and detaches it
// when the test finishes.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}
	require.NoError(t, b.Attach(config))
	defer b.Detach()

	_, err := os.Stat(filepath.Join(tmpDir, dbFileName))
	assert.NoError(t, err, "database file should exist after attach")

	err = b.Attach(config)
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackend_AttachRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		config types.Config
	}{
		{name: "empty backend", config: types.Config{DataDir: t.TempDir()}},
		{name: "unknown backend", config: types.Config{Backend: "redis", DataDir: t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend()
			assert.Error(t, b.Attach(tt.config))
		})
	}
}

func TestBackend_Detach(t *testing.T) {
	b := newTestBackend(t)

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "second detach is a no-op")

	_, err := b.Categories().All()
	assert.ErrorIs(t, err, types.ErrStoreDetached)

	_, err = b.Books().Get(3001)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestBackend_SeedsBooksOnFirstAttach(t *testing.T) {
	b := newTestBackend(t)

	books, err := b.Books().All()
	require.NoError(t, err)
	require.Len(t, books, 5)
	assert.Equal(t, int64(3001), books[0].ID)
	assert.Equal(t, "A Tale of Two Cities", books[0].Title)
}

func TestBackend_ReattachDoesNotReseed(t *testing.T) {
	tmpDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	b := NewBackend()
	require.NoError(t, b.Attach(config))
	require.NoError(t, b.Books().Delete(3001))
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(config))
	defer b2.Detach()

	books, err := b2.Books().All()
	require.NoError(t, err)
	assert.Len(t, books, 4, "deleted seed book must stay deleted")
}

func TestBackend_Exists(t *testing.T) {
	b := newTestBackend(t)

	ok, err := b.Exists(types.TableBooks, 3001)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.Exists(types.TableBooks, 9999)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = b.Exists("sqlite_master", 1)
	assert.Error(t, err, "tables outside the whitelist are rejected")
}
