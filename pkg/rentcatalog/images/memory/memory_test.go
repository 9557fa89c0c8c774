package memory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentgear/catalog/pkg/rentcatalog"
	imagememory "github.com/rentgear/catalog/pkg/rentcatalog/images/memory"
)

func TestPutStoresBytes(t *testing.T) {
	store := imagememory.New()
	ctx := context.Background()

	accepted, err := store.Put(ctx, "leaf-blower", []rentcatalog.ImageUpload{
		{Filename: "a.jpg", Reader: strings.NewReader("payload")},
		{Filename: "notes.txt", Reader: strings.NewReader("skipped")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, accepted)

	data, ok := store.Bytes("leaf-blower", "a.jpg")
	require.True(t, ok)
	assert.Equal(t, "payload", string(data))

	_, ok = store.Bytes("leaf-blower", "notes.txt")
	assert.False(t, ok)
}

func TestDeleteAllReportsExistence(t *testing.T) {
	store := imagememory.New()
	ctx := context.Background()

	existed, err := store.DeleteAll(ctx, "never-created")
	require.NoError(t, err)
	assert.False(t, existed)

	require.NoError(t, store.Ensure(ctx, "leaf-blower"))
	existed, err = store.DeleteAll(ctx, "leaf-blower")
	require.NoError(t, err)
	assert.True(t, existed)
}

func TestDeleteMissingImage(t *testing.T) {
	store := imagememory.New()
	err := store.Delete(context.Background(), "leaf-blower", "a.jpg")
	assert.ErrorIs(t, err, rentcatalog.ErrImageNotFound)
}
