package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetPut(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "navdir.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, ok, err := s.Get(ctx, "data")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "data", "v1"))
	require.NoError(t, s.Put(ctx, "data", "v2"))

	value, ok, err := s.Get(ctx, "data")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value, "put replaces the previous value")
	assert.NoError(t, s.Ping(ctx))
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "navdir.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "admin_password", "hunter2"))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	value, ok, err := reopened.Get(ctx, "admin_password")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hunter2", value)
}

func TestStoreClosedFails(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "navdir.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, _, err = s.Get(context.Background(), "data")
	assert.Error(t, err)
}
