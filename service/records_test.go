package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRecordDigest(t *testing.T) {
	rec := NewSaveRecord("/tmp/chart.png", []byte{0x00, 0x01, 0x02})

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "/tmp/chart.png", rec.Path)
	assert.Equal(t, 3, rec.Bytes)
	assert.Len(t, rec.Digest, 64, "BLAKE2b-256 digest is 32 hex-encoded bytes")
	assert.Equal(t, "png", rec.Format)
	assert.False(t, rec.SavedAt.IsZero())

	same := NewSaveRecord("/tmp/chart.png", []byte{0x00, 0x01, 0x02})
	assert.Equal(t, rec.Digest, same.Digest, "digest depends only on content")
	assert.NotEqual(t, rec.ID, same.ID)
}

func TestRecordStorageNewestFirst(t *testing.T) {
	stor := NewSaveRecordMemoryStorage()
	ctx := context.Background()

	require.NoError(t, stor.Add(ctx, NewSaveRecord("/tmp/a.png", nil)))
	require.NoError(t, stor.Add(ctx, NewSaveRecord("/tmp/b.png", nil)))
	require.NoError(t, stor.Add(ctx, NewSaveRecord("/tmp/c.png", nil)))

	recs := stor.List(ctx)
	require.Len(t, recs, 3)
	assert.Equal(t, "/tmp/c.png", recs[0].Path)
	assert.Equal(t, "/tmp/a.png", recs[2].Path)
}

func TestRecordStorageCap(t *testing.T) {
	stor := NewSaveRecordMemoryStorage()
	ctx := context.Background()

	for i := 0; i < maxSaveRecords+5; i++ {
		require.NoError(t, stor.Add(ctx, NewSaveRecord(fmt.Sprintf("/tmp/%d.png", i), nil)))
	}

	recs := stor.List(ctx)
	require.Len(t, recs, maxSaveRecords)
	assert.Equal(t, fmt.Sprintf("/tmp/%d.png", maxSaveRecords+4), recs[0].Path, "newest record survives")
	assert.Equal(t, "/tmp/5.png", recs[len(recs)-1].Path, "oldest records are dropped")
}

func TestRecordStorageListCopies(t *testing.T) {
	stor := NewSaveRecordMemoryStorage()
	ctx := context.Background()
	require.NoError(t, stor.Add(ctx, NewSaveRecord("/tmp/a.png", nil)))

	recs := stor.List(ctx)
	recs[0].Path = "/tmp/mutated.png"

	assert.Equal(t, "/tmp/a.png", stor.List(ctx)[0].Path)
}

func TestFormatForPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/tmp/chart.png", "png"},
		{"/tmp/chart.PNG", "png"},
		{"/tmp/photo.jpg", "jpeg"},
		{"/tmp/vector.svg", "svg"},
		{"/tmp/data.json", "json"},
		{"/tmp/table.tsv", "csv"},
		{"/tmp/page.htm", "html"},
		{"/tmp/render.bin", "binary"},
		{"/tmp/noext", "binary"},
		{"/tmp/archive.xyz", "binary"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatForPath(tc.path))
		})
	}
}
