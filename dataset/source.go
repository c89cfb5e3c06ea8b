package dataset

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
)

type SourceKind string

const (
	SourcePath   SourceKind = "path"
	SourceUpload SourceKind = "upload"
)

// Source names where a dataset comes from: a file on disk or uploaded bytes.
type Source struct {
	Kind SourceKind
	Path string
	Name string
	Data []byte
}

func PathSource(path string) Source {
	return Source{Kind: SourcePath, Path: filepath.Clean(path), Name: filepath.Base(path)}
}

func UploadSource(name string, data []byte) Source {
	return Source{Kind: SourceUpload, Name: filepath.Base(name), Data: data}
}

// Key identifies the source for caching. Uploads are keyed by content so the
// same file uploaded twice is parsed once.
func (s Source) Key() string {
	if s.Kind == SourceUpload {
		return string(SourceUpload) + ":" + getMD5String(s.Data)
	}
	return string(SourcePath) + ":" + s.Path
}

// Label is a human readable description used in notices.
func (s Source) Label() string {
	if s.Kind == SourceUpload {
		return fmt.Sprintf("uploaded file %s", s.Name)
	}
	return fmt.Sprintf("default data file %s", s.Path)
}

func getMD5String(input []byte) string {
	hasher := md5.New()
	hasher.Write(input)
	return hex.EncodeToString(hasher.Sum(nil))
}
