package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/rara"
	"github.com/fwojciec/rara/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCollection() *rara.Collection {
	r1 := &rara.Record{URL: "https://example.com/1", Entity: "rarity", ID: 1, Text: "first"}
	r1.SetAttr("domain", "morphology")
	r1.SetAttr("universals_violated", "https://example.com/u/3, https://example.com/u/4")

	r2 := &rara.Record{URL: "https://example.com/7", Entity: "Universal", ID: 7, Text: "second"}
	r2.SetAttr("status", "achieved")

	c := rara.NewCollection()
	c.Append(r1)
	c.Append(r2)
	return c
}

func TestJSONStore(t *testing.T) {
	t.Parallel()

	t.Run("save then load round-trips records", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "crawl.json")
		store := fs.NewJSONStore()
		original := sampleCollection()

		require.NoError(t, store.Save(context.Background(), original, path))
		loaded, err := store.Load(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, original.Keys(), loaded.Keys())
		assert.Equal(t, original.Records(), loaded.Records())
		assert.Equal(t, original.Size(), loaded.Size())
	})

	t.Run("writes keys as strings in ascending order", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "crawl.json")
		c := rara.NewCollection()
		for i := range 11 {
			c.Append(&rara.Record{URL: "u", ID: i})
		}

		require.NoError(t, fs.NewJSONStore().Save(context.Background(), c, path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `{"0":{"url":"u","entity":"","id":0,"text":""},"1":`)
		assert.Contains(t, string(data), `"9":{"url":"u","entity":"","id":9,"text":""},"10":`)
		_, err = os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("load recomputes counter from highest key", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "gaps.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"0":{"url":"a","entity":"rarity","id":"1","text":""},"5":{"url":"b","entity":"rarity","id":2,"text":""}}`), 0644))

		c, err := fs.NewJSONStore().Load(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, []int{0, 5}, c.Keys())
		assert.Equal(t, 6, c.Size())
		assert.Equal(t, 2, c.Len())
		assert.Equal(t, 6, c.Append(&rara.Record{URL: "c"}))

		r, _ := c.Get(0)
		assert.Equal(t, 1, r.ID)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "crawl.json")

		require.NoError(t, fs.NewJSONStore().Save(context.Background(), sampleCollection(), path))

		_, err := os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("returns not found for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewJSONStore().Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))

		require.Error(t, err)
		assert.Equal(t, rara.ENOTFOUND, rara.ErrorCode(err))
	})

	t.Run("rejects non-integer keys", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"first":{"url":"a","id":1}}`), 0644))

		_, err := fs.NewJSONStore().Load(context.Background(), path)

		require.Error(t, err)
		assert.Equal(t, rara.EINVALID, rara.ErrorCode(err))
	})

	t.Run("rejects negative keys", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "negative.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"-1":{"url":"a","id":1},"0":{"url":"b","id":2}}`), 0644))

		_, err := fs.NewJSONStore().Load(context.Background(), path)

		require.Error(t, err)
		assert.Equal(t, rara.EINVALID, rara.ErrorCode(err))
		assert.Contains(t, rara.ErrorMessage(err), "negative")
	})

	t.Run("rejects records that fail validation", func(t *testing.T) {
		t.Parallel()

		for name, body := range map[string]string{
			"empty url":   `{"0":{"url":"","entity":"rarity","id":1,"text":""}}`,
			"negative id": `{"0":{"url":"a","entity":"rarity","id":-3,"text":""}}`,
		} {
			path := filepath.Join(t.TempDir(), "invalid.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			_, err := fs.NewJSONStore().Load(context.Background(), path)

			require.Error(t, err, name)
			assert.Equal(t, rara.EINVALID, rara.ErrorCode(err), name)
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`[1, 2`), 0644))

		_, err := fs.NewJSONStore().Load(context.Background(), path)

		require.Error(t, err)
		assert.Equal(t, rara.EINVALID, rara.ErrorCode(err))
	})

	t.Run("rejects nil collection", func(t *testing.T) {
		t.Parallel()

		err := fs.NewJSONStore().Save(context.Background(), nil, filepath.Join(t.TempDir(), "x.json"))

		assert.Equal(t, rara.EINVALID, rara.ErrorCode(err))
	})

	t.Run("saves empty collection as empty object", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.json")

		require.NoError(t, fs.NewJSONStore().Save(context.Background(), rara.NewCollection(), path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})
}
