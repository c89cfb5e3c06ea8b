package dataset

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/mbti_top10/domain/models"
)

func sampleCSV() []byte {
	return []byte(strings.Join([]string{
		header,
		csvRow("Kenya", "0.11"),
		csvRow("Laos", "0.07"),
	}, "\n"))
}

func TestLoaderPathIsCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.csv")
	require.NoError(t, os.WriteFile(path, sampleCSV(), 0o644))

	cache := NewCache()
	loader := NewLoader(cache)
	first, err := loader.Load(context.Background(), PathSource(path))
	require.NoError(t, err)
	assert.Equal(t, 2, first.Len())

	// the file is gone, the cached dataset is still served
	require.NoError(t, os.Remove(path))
	second, err := loader.Load(context.Background(), PathSource(path))
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader(nil)
	_, err := loader.Load(context.Background(), PathSource(filepath.Join(t.TempDir(), "absent.csv")))
	assert.ErrorIs(t, err, models.ErrMissingData)
}

func TestLoaderUploadKeyedByContent(t *testing.T) {
	cache := NewCache()
	loader := NewLoader(cache)
	a, err := loader.Load(context.Background(), UploadSource("a.csv", sampleCSV()))
	require.NoError(t, err)
	b, err := loader.Load(context.Background(), UploadSource("b.csv", sampleCSV()))
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, cache.Len())
}

func TestLoaderUploadErrors(t *testing.T) {
	loader := NewLoader(nil)
	_, err := loader.Load(context.Background(), UploadSource("empty.csv", nil))
	assert.ErrorIs(t, err, models.ErrLoad)

	_, err = loader.Load(context.Background(), UploadSource("bad.csv", []byte("just,some\n1,2\n")))
	assert.ErrorIs(t, err, models.ErrLoad)

	_, err = loader.Load(context.Background(), UploadSource("bad.gz", []byte("not gzip")))
	assert.ErrorIs(t, err, models.ErrLoad)
}

func TestLoaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader(nil).Load(ctx, UploadSource("a.csv", sampleCSV()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoaderArchives(t *testing.T) {
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write(sampleCSV())
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	var zipped bytes.Buffer
	zw := zip.NewWriter(&zipped)
	small, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = small.Write([]byte("x"))
	require.NoError(t, err)
	big, err := zw.Create("data/countries.csv")
	require.NoError(t, err)
	_, err = big.Write(sampleCSV())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var lz bytes.Buffer
	lw := lz4.NewWriter(&lz)
	_, err = lw.Write(sampleCSV())
	require.NoError(t, err)
	require.NoError(t, lw.Close())

	for name, data := range map[string][]byte{
		"countries.csv.gz":  gz.Bytes(),
		"countries.zip":     zipped.Bytes(),
		"countries.csv.lz4": lz.Bytes(),
	} {
		t.Run(name, func(t *testing.T) {
			ds, err := NewLoader(nil).Load(context.Background(), UploadSource(name, data))
			require.NoError(t, err)
			assert.Equal(t, "Kenya", ds.Rows[0].Country)
		})
	}
}

func TestLoaderRejectsOversizedArchive(t *testing.T) {
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write(sampleCSV())
	require.NoError(t, err)
	_, err = gw.Write(bytes.Repeat([]byte("\n"), 4<<20))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.Less(t, gz.Len(), 1<<20)

	loader := NewLoader(nil).WithMaxUnpacked(1 << 20)
	_, err = loader.Load(context.Background(), UploadSource("big.csv.gz", gz.Bytes()))
	require.ErrorIs(t, err, models.ErrLoad)
	assert.Contains(t, err.Error(), "decompressed data exceeds 1 MB")

	// the same archive fits under the default limit
	ds, err := NewLoader(nil).Load(context.Background(), UploadSource("big.csv.gz", gz.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
}

func TestUnpackArchiveLimitIsInclusive(t *testing.T) {
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write(bytes.Repeat([]byte("a"), 1024))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	out, err := unpackArchive("a.gz", gz.Bytes(), 1024)
	require.NoError(t, err)
	assert.Len(t, out, 1024)

	_, err = unpackArchive("a.gz", gz.Bytes(), 1023)
	assert.ErrorIs(t, err, models.ErrLoad)
}

func TestSourceKeyAndLabel(t *testing.T) {
	assert.Equal(t, "path:data/x.csv", PathSource("data/./x.csv").Key())
	assert.True(t, strings.HasPrefix(UploadSource("x.csv", []byte("a")).Key(), "upload:"))
	assert.Equal(t, "uploaded file x.csv", UploadSource("/tmp/x.csv", nil).Label())
}

func TestCachePutKeepsFirst(t *testing.T) {
	cache := NewCache()
	first := &models.Dataset{}
	second := &models.Dataset{}
	assert.Same(t, first, cache.Put("k", first))
	assert.Same(t, first, cache.Put("k", second))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.csv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.True(t, Exists(path))
	assert.False(t, Exists(dir))
	assert.False(t, Exists(filepath.Join(dir, "nope.csv")))
}
