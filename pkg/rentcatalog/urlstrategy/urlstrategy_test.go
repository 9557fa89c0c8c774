package urlstrategy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentgear/catalog/pkg/rentcatalog/urlstrategy"
)

func TestStaticPath(t *testing.T) {
	ctx := context.Background()

	t.Run("joins prefix, slug and filename", func(t *testing.T) {
		s := urlstrategy.NewStaticPath("/media")
		url, err := s.ImageURL(ctx, "leaf-blower", "a.jpg")
		require.NoError(t, err)
		assert.Equal(t, "/media/leaf-blower/a.jpg", url)
	})

	t.Run("empty prefix falls back to default", func(t *testing.T) {
		s := urlstrategy.NewStaticPath("")
		url, err := s.ImageURL(ctx, "leaf-blower", "a.jpg")
		require.NoError(t, err)
		assert.Equal(t, "/images/products/leaf-blower/a.jpg", url)
	})

	t.Run("trailing slash is trimmed", func(t *testing.T) {
		s := urlstrategy.NewStaticPath("/media/")
		url, err := s.ImageURL(ctx, "leaf-blower", "a.jpg")
		require.NoError(t, err)
		assert.Equal(t, "/media/leaf-blower/a.jpg", url)
	})

	t.Run("empty slug or filename fails", func(t *testing.T) {
		s := urlstrategy.NewStaticPath("/media")
		_, err := s.ImageURL(ctx, "", "a.jpg")
		assert.Error(t, err)
		_, err = s.ImageURL(ctx, "leaf-blower", "")
		assert.Error(t, err)
	})
}

func TestCDN(t *testing.T) {
	ctx := context.Background()

	t.Run("absolute urls under the base", func(t *testing.T) {
		s := urlstrategy.NewCDN("https://cdn.example.com/rentals/")
		url, err := s.ImageURL(ctx, "leaf-blower", "a.jpg")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/rentals/leaf-blower/a.jpg", url)
	})

	t.Run("missing base fails", func(t *testing.T) {
		s := urlstrategy.NewCDN("")
		_, err := s.ImageURL(ctx, "leaf-blower", "a.jpg")
		assert.Error(t, err)
	})
}
