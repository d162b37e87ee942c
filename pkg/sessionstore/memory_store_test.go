package sessionstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyphaxBN/pointage-admin/pkg/sessionstore"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := sessionstore.NewMemoryStore()

	token, user, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)

	require.NoError(t, store.Save(ctx, "tok", []byte(`{"id":"7"}`)))

	token, user, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, []byte(`{"id":"7"}`), user)

	require.NoError(t, store.Clear(ctx))
	token, user, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestMemoryStore_CopiesUserBytes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := sessionstore.NewMemoryStore()
	original := []byte(`{"id":"1"}`)
	require.NoError(t, store.Save(ctx, "tok", original))

	original[0] = 'X'

	_, user, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"1"}`), user)
}
