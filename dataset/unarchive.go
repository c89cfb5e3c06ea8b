package dataset

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"

	"github.com/pivolan/mbti_top10/domain/models"
)

// ArchiveExtensions are the compressed formats accepted besides plain CSV.
var ArchiveExtensions = []string{".gz", ".zip", ".lz4"}

// DefaultMaxUnpackedBytes caps the decompressed size of an archive.
const DefaultMaxUnpackedBytes = 256 << 20

// unpackArchive returns the decompressed content for archive names and data
// unchanged otherwise. Archives expanding past limit bytes are rejected.
func unpackArchive(name string, data []byte, limit int64) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip":
		return unpackZipArchive(data, limit)
	case ".gz":
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %v", models.ErrLoad, err)
		}
		defer gr.Close()
		return readAll("gzip", gr, limit)
	case ".lz4":
		return readAll("lz4", lz4.NewReader(bytes.NewReader(data)), limit)
	}
	return data, nil
}

// unpackZipArchive extracts the largest file in the archive.
func unpackZipArchive(data []byte, limit int64) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: zip: %v", models.ErrLoad, err)
	}

	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largestFile == nil || f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return nil, fmt.Errorf("%w: zip archive has no files", models.ErrLoad)
	}

	rc, err := largestFile.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: zip entry %s: %v", models.ErrLoad, largestFile.Name, err)
	}
	defer rc.Close()
	return readAll("zip", rc, limit)
}

// readAll reads at most limit bytes; one byte more means the archive is too big.
func readAll(format string, r io.Reader, limit int64) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrLoad, format, err)
	}
	if int64(len(out)) > limit {
		return nil, fmt.Errorf("%w: decompressed data exceeds %d MB", models.ErrLoad, limit>>20)
	}
	return out, nil
}
