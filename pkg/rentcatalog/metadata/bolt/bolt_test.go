package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentgear/catalog/pkg/rentcatalog"
	metabolt "github.com/rentgear/catalog/pkg/rentcatalog/metadata/bolt"
)

func newStore(t *testing.T) *metabolt.Store {
	t.Helper()
	store, err := metabolt.New(metabolt.Config{Path: filepath.Join(t.TempDir(), "catalog.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleProduct(slug, name string) *rentcatalog.Product {
	return &rentcatalog.Product{
		Slug: slug,
		Frontmatter: rentcatalog.Frontmatter{
			Name:         name,
			Description:  "desc",
			Category:     "Lawn",
			DailyPrice:   25,
			WeekendPrice: 40,
			WeeklyPrice:  120,
			Deposit:      50,
		},
		Body: "body\n",
	}
}

func TestNewRequiresPath(t *testing.T) {
	_, err := metabolt.New(metabolt.Config{})
	assert.Error(t, err)
}

func TestCRUD(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		product := sampleProduct("leaf-blower", "Leaf Blower")
		require.NoError(t, store.Create(ctx, product))

		got, err := store.Get(ctx, "leaf-blower")
		require.NoError(t, err)
		assert.Equal(t, product.Frontmatter, got.Frontmatter)
		assert.Equal(t, product.Body, got.Body)
	})

	t.Run("create conflict", func(t *testing.T) {
		err := store.Create(ctx, sampleProduct("leaf-blower", "Leaf Blower"))
		assert.ErrorIs(t, err, rentcatalog.ErrSlugExists)
	})

	t.Run("update", func(t *testing.T) {
		updated := sampleProduct("leaf-blower", "Leaf Blower Pro")
		require.NoError(t, store.Update(ctx, updated))

		got, err := store.Get(ctx, "leaf-blower")
		require.NoError(t, err)
		assert.Equal(t, "Leaf Blower Pro", got.Frontmatter.Name)
	})

	t.Run("update missing", func(t *testing.T) {
		err := store.Update(ctx, sampleProduct("missing", "X"))
		assert.ErrorIs(t, err, rentcatalog.ErrProductNotFound)
	})

	t.Run("list is sorted by slug", func(t *testing.T) {
		require.NoError(t, store.Create(ctx, sampleProduct("chainsaw", "Chainsaw")))

		entries, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "chainsaw", entries[0].Slug)
		assert.Equal(t, "leaf-blower", entries[1].Slug)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "chainsaw"))
		err := store.Delete(ctx, "chainsaw")
		assert.ErrorIs(t, err, rentcatalog.ErrProductNotFound)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := store.Get(ctx, "chainsaw")
		assert.ErrorIs(t, err, rentcatalog.ErrProductNotFound)
	})
}
