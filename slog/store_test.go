package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/rara"
	"github.com/fwojciec/rara/mock"
	rslog "github.com/fwojciec/rara/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingStore(t *testing.T) {
	t.Parallel()

	t.Run("logs save with record count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var saved *rara.Collection
		inner := &mock.CollectionStore{
			SaveFn: func(ctx context.Context, c *rara.Collection, path string) error {
				saved = c
				return nil
			},
		}
		c := rara.NewCollection()
		c.Append(&rara.Record{URL: "a"})
		c.Append(&rara.Record{URL: "b"})

		err := rslog.NewLoggingStore(inner, logger).Save(context.Background(), c, "out.json")

		require.NoError(t, err)
		assert.Same(t, c, saved)
		output := buf.String()
		assert.Contains(t, output, "msg=save")
		assert.Contains(t, output, "path=out.json")
		assert.Contains(t, output, "records=2")
	})

	t.Run("logs failed load", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CollectionStore{
			LoadFn: func(ctx context.Context, path string) (*rara.Collection, error) {
				return nil, rara.Errorf(rara.ENOTFOUND, "missing.json not found")
			},
		}

		c, err := rslog.NewLoggingStore(inner, logger).Load(context.Background(), "missing.json")

		require.Error(t, err)
		assert.Nil(t, c)
		assert.Equal(t, rara.ENOTFOUND, rara.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, "msg=load")
		assert.Contains(t, output, "records=0")
		assert.Contains(t, output, `err="missing.json not found"`)
	})
}

func TestLoggingSnapshotStore(t *testing.T) {
	t.Parallel()

	t.Run("logs snapshot listing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SnapshotStore{
			FindSnapshotsFn: func(ctx context.Context) ([]*rara.Snapshot, error) {
				return []*rara.Snapshot{{Name: "a"}, {Name: "b"}}, nil
			},
		}

		snaps, err := rslog.NewLoggingSnapshotStore(inner, logger).FindSnapshots(context.Background())

		require.NoError(t, err)
		assert.Len(t, snaps, 2)
		assert.Contains(t, buf.String(), `msg="find snapshots"`)
		assert.Contains(t, buf.String(), "count=2")
	})

	t.Run("logs loads through the wrapped store", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SnapshotStore{
			CollectionStore: mock.CollectionStore{
				LoadFn: func(ctx context.Context, path string) (*rara.Collection, error) {
					c := rara.NewCollection()
					c.Append(&rara.Record{URL: "a"})
					return c, nil
				},
			},
		}

		c, err := rslog.NewLoggingSnapshotStore(inner, logger).Load(context.Background(), "crawl")

		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
		assert.Contains(t, buf.String(), "path=crawl")
		assert.Contains(t, buf.String(), "records=1")
	})
}
