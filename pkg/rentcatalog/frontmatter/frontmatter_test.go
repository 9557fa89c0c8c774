package frontmatter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentgear/catalog/pkg/rentcatalog"
	"github.com/rentgear/catalog/pkg/rentcatalog/frontmatter"
)

func sampleFrontmatter() rentcatalog.Frontmatter {
	return rentcatalog.Frontmatter{
		Name:         "Leaf Blower",
		Description:  "A powerful leaf blower",
		Category:     "Lawn",
		DailyPrice:   25,
		WeekendPrice: 40,
		WeeklyPrice:  120,
		Deposit:      50,
	}
}

func TestRoundTrip(t *testing.T) {
	fm := sampleFrontmatter()
	body := "# Leaf Blower\n\nGreat for autumn.\n"

	data, err := frontmatter.Marshal(fm, body)
	require.NoError(t, err)

	parsedFM, parsedBody, err := frontmatter.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, fm, parsedFM)
	assert.Equal(t, body, parsedBody)
}

func TestRoundTripEmptyBody(t *testing.T) {
	data, err := frontmatter.Marshal(sampleFrontmatter(), "")
	require.NoError(t, err)

	fm, body, err := frontmatter.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, sampleFrontmatter(), fm)
	assert.Empty(t, body)
}

func TestParse(t *testing.T) {
	t.Run("numeric fields are numbers", func(t *testing.T) {
		doc := "---\nname: Drill\ndescription: A drill\ncategory: Tools\ndailyPrice: 12.5\nweekendPrice: 20\nweeklyPrice: 60\ndeposit: 0\n---\nBody text\n"

		fm, body, err := frontmatter.Parse([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, 12.5, fm.DailyPrice)
		assert.Equal(t, 20.0, fm.WeekendPrice)
		assert.Equal(t, 0.0, fm.Deposit)
		assert.Equal(t, "Body text\n", body)
	})

	t.Run("no opening fence is all body", func(t *testing.T) {
		fm, body, err := frontmatter.Parse([]byte("just some text\n"))
		require.NoError(t, err)
		assert.Equal(t, rentcatalog.Frontmatter{}, fm)
		assert.Equal(t, "just some text\n", body)
	})

	t.Run("missing closing fence fails", func(t *testing.T) {
		_, _, err := frontmatter.Parse([]byte("---\nname: Drill\n"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml fails", func(t *testing.T) {
		_, _, err := frontmatter.Parse([]byte("---\nname: [unclosed\n---\nbody\n"))
		assert.Error(t, err)
	})

	t.Run("crlf fences", func(t *testing.T) {
		doc := "---\r\nname: Drill\r\n---\r\nbody\r\n"
		fm, body, err := frontmatter.Parse([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, "Drill", fm.Name)
		assert.Equal(t, "body\r\n", body)
	})

	t.Run("closing fence at end without newline", func(t *testing.T) {
		fm, body, err := frontmatter.Parse([]byte("---\nname: Drill\n---"))
		require.NoError(t, err)
		assert.Equal(t, "Drill", fm.Name)
		assert.Empty(t, body)
	})

	t.Run("empty input is empty body", func(t *testing.T) {
		fm, body, err := frontmatter.Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, rentcatalog.Frontmatter{}, fm)
		assert.Empty(t, body)
	})
}
