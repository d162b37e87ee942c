package sessionstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyphaxBN/pointage-admin/pkg/sessionstore"
)

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store, err := sessionstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	user := []byte(`{"id":"1","name":"Alice","role":"ADMIN"}`)
	require.NoError(t, store.Save(ctx, "tok-123", user))

	token, got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, user, got)
}

func TestFileStore_LoadEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store, err := sessionstore.NewFileStore(filepath.Join(t.TempDir(), "never-created"))
	require.NoError(t, err)

	token, user, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store, err := sessionstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "old", []byte(`{"id":"1"}`)))
	require.NoError(t, store.Save(ctx, "new", []byte(`{"id":"2"}`)))

	token, user, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", token)
	assert.JSONEq(t, `{"id":"2"}`, string(user))
}

func TestFileStore_Clear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store, err := sessionstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "tok", []byte(`{"id":"1"}`)))
	require.NoError(t, store.Clear(ctx))

	token, user, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)

	// Clearing an already empty store is fine.
	require.NoError(t, store.Clear(ctx))
}

func TestFileStore_TokenFilePermissions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	store, err := sessionstore.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "secret", nil))

	info, err := os.Stat(filepath.Join(dir, "auth_token"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
