package fs_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/rara"
	"github.com/fwojciec/rara/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporter_Export(t *testing.T) {
	t.Parallel()

	t.Run("writes header and rows without key index", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := fs.NewCSVExporter(',').Export(&buf, sampleCollection())

		require.NoError(t, err)
		assert.Equal(t,
			"url,entity,id,text,domain,universals_violated,status\n"+
				"https://example.com/1,rarity,1,first,morphology,\"https://example.com/u/3, https://example.com/u/4\",\n"+
				"https://example.com/7,Universal,7,second,,,achieved\n",
			buf.String())
	})

	t.Run("honors separator", func(t *testing.T) {
		t.Parallel()

		c := rara.NewCollection()
		c.Append(&rara.Record{URL: "u", Entity: "rarity", ID: 3, Text: "a, b"})

		var buf bytes.Buffer
		err := fs.NewCSVExporter(';').Export(&buf, c)

		require.NoError(t, err)
		assert.Equal(t, "url;entity;id;text\nu;rarity;3;a, b\n", buf.String())
	})

	t.Run("falls back to comma for invalid separator", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := fs.NewCSVExporter('\n').Export(&buf, rara.NewCollection())

		require.NoError(t, err)
		assert.Equal(t, "url,entity,id,text\n", buf.String())
	})
}

func TestColumns(t *testing.T) {
	t.Parallel()

	a := &rara.Record{}
	a.SetAttr("b", "1")
	a.SetAttr("a", "2")
	b := &rara.Record{}
	b.SetAttr("c", "3")
	b.SetAttr("b", "4")

	assert.Equal(t, []string{"url", "entity", "id", "text", "b", "a", "c"}, fs.Columns([]*rara.Record{a, b}))
}
