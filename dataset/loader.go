package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/pivolan/mbti_top10/domain/models"
)

// Loader reads datasets through a cache so a source is parsed at most once.
type Loader struct {
	cache       *Cache
	maxUnpacked int64
}

// NewLoader returns a loader backed by cache. A nil cache gets a fresh one.
func NewLoader(cache *Cache) *Loader {
	if cache == nil {
		cache = NewCache()
	}
	return &Loader{cache: cache, maxUnpacked: DefaultMaxUnpackedBytes}
}

// WithMaxUnpacked sets the largest decompressed size accepted for archives.
// Non positive values keep the default.
func (l *Loader) WithMaxUnpacked(n int64) *Loader {
	if n > 0 {
		l.maxUnpacked = n
	}
	return l
}

// Load returns the dataset for src, parsing it on first use.
// A path that does not exist yields models.ErrMissingData.
func (l *Loader) Load(ctx context.Context, src Source) (*models.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := src.Key()
	if ds, ok := l.cache.Get(key); ok {
		return ds, nil
	}

	data, err := readSource(src)
	if err != nil {
		return nil, err
	}
	data, err = unpackArchive(src.Name, data, l.maxUnpacked)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Label(), err)
	}
	ds, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Label(), err)
	}
	if ds.Duplicates > 0 {
		log.Printf("dataset %s: skipped %d duplicate countries", src.Label(), ds.Duplicates)
	}
	log.Printf("dataset %s: loaded %d rows", src.Label(), ds.Len())
	return l.cache.Put(key, ds), nil
}

// Exists reports whether path names a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func readSource(src Source) ([]byte, error) {
	if src.Kind == SourceUpload {
		if len(src.Data) == 0 {
			return nil, fmt.Errorf("%w: uploaded file %s is empty", models.ErrLoad, src.Name)
		}
		return src.Data, nil
	}
	data, err := os.ReadFile(src.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s not found", models.ErrMissingData, src.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrLoad, err)
	}
	return data, nil
}
