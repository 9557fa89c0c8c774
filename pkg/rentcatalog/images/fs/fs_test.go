package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentgear/catalog/pkg/rentcatalog"
	imagefs "github.com/rentgear/catalog/pkg/rentcatalog/images/fs"
)

func newStore(t *testing.T) (*imagefs.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := imagefs.New(imagefs.Config{BaseDir: dir})
	require.NoError(t, err)
	return store, dir
}

func upload(name, content string) rentcatalog.ImageUpload {
	return rentcatalog.ImageUpload{Filename: name, Reader: strings.NewReader(content)}
}

func TestPutAndList(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	accepted, err := store.Put(ctx, "leaf-blower", []rentcatalog.ImageUpload{
		upload("b.png", "b"),
		upload("a.jpg", "a"),
		upload("c.webp", "c"),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.jpg", "b.png", "c.webp"}, accepted)

	// Ordering is always lexicographic by filename, recomputed on read.
	filenames, err := store.List(ctx, "leaf-blower")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.png", "c.webp"}, filenames)
}

func TestPutFiltersExtensions(t *testing.T) {
	store, dir := newStore(t)
	ctx := context.Background()

	accepted, err := store.Put(ctx, "leaf-blower", []rentcatalog.ImageUpload{
		upload("photo.png", "png"),
		upload("doc.pdf", "pdf"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"photo.png"}, accepted)

	_, err = os.Stat(filepath.Join(dir, "leaf-blower", "doc.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestPutCaseInsensitiveExtensions(t *testing.T) {
	store, _ := newStore(t)

	accepted, err := store.Put(context.Background(), "leaf-blower", []rentcatalog.ImageUpload{
		upload("PHOTO.JPG", "x"),
		upload("anim.GIF", "y"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"PHOTO.JPG", "anim.GIF"}, accepted)
}

func TestPutNothingAccepted(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	t.Run("all rejected", func(t *testing.T) {
		_, err := store.Put(ctx, "leaf-blower", []rentcatalog.ImageUpload{upload("doc.pdf", "x")})
		assert.ErrorIs(t, err, rentcatalog.ErrNoImagesAccepted)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := store.Put(ctx, "leaf-blower", nil)
		assert.ErrorIs(t, err, rentcatalog.ErrNoImagesAccepted)
	})
}

func TestPutOverwrites(t *testing.T) {
	store, dir := newStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "leaf-blower", []rentcatalog.ImageUpload{upload("a.jpg", "old")})
	require.NoError(t, err)
	_, err = store.Put(ctx, "leaf-blower", []rentcatalog.ImageUpload{upload("a.jpg", "new")})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "leaf-blower", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestPutStripsPathComponents(t *testing.T) {
	store, dir := newStore(t)

	accepted, err := store.Put(context.Background(), "leaf-blower", []rentcatalog.ImageUpload{
		upload("../../escape.png", "x"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"escape.png"}, accepted)

	_, err = os.Stat(filepath.Join(dir, "leaf-blower", "escape.png"))
	assert.NoError(t, err)
}

func TestListMissingDirectory(t *testing.T) {
	store, _ := newStore(t)

	filenames, err := store.List(context.Background(), "never-created")
	require.NoError(t, err)
	assert.Empty(t, filenames)
}

func TestListSkipsUnacceptedFiles(t *testing.T) {
	store, dir := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Ensure(ctx, "leaf-blower"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leaf-blower", "a.jpg"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leaf-blower", "readme.txt"), []byte("x"), 0644))

	filenames, err := store.List(ctx, "leaf-blower")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, filenames)
}

func TestDelete(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "leaf-blower", []rentcatalog.ImageUpload{upload("a.jpg", "x")})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "leaf-blower", "a.jpg"))

	err = store.Delete(ctx, "leaf-blower", "a.jpg")
	assert.ErrorIs(t, err, rentcatalog.ErrImageNotFound)
}

func TestDeleteAll(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	t.Run("missing set reports false without error", func(t *testing.T) {
		existed, err := store.DeleteAll(ctx, "never-created")
		require.NoError(t, err)
		assert.False(t, existed)
	})

	t.Run("existing set is removed recursively", func(t *testing.T) {
		_, err := store.Put(ctx, "leaf-blower", []rentcatalog.ImageUpload{upload("a.jpg", "x")})
		require.NoError(t, err)

		existed, err := store.DeleteAll(ctx, "leaf-blower")
		require.NoError(t, err)
		assert.True(t, existed)

		filenames, err := store.List(ctx, "leaf-blower")
		require.NoError(t, err)
		assert.Empty(t, filenames)
	})
}

func TestEnsure(t *testing.T) {
	store, dir := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Ensure(ctx, "new-product"))
	info, err := os.Stat(filepath.Join(dir, "new-product"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent.
	assert.NoError(t, store.Ensure(ctx, "new-product"))
}
