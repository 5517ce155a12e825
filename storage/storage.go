// Package storage is the content store adapter: binary objects go in,
// a public URL and an opaque object id come out.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gallery/utils"

	"github.com/google/uuid"
)

// StoredObject is the result of a successful upload. ObjectID is what Delete expects.
type StoredObject struct {
	URL      string `json:"url"`
	ObjectID string `json:"objectId"`
}

// ObjectStore must be safe for concurrent use
type ObjectStore interface {
	Upload(ctx context.Context, body io.Reader, fileName, mimeType string) (StoredObject, error)
	Delete(ctx context.Context, objectID string) error
}

// New creates the store described by the bucket
func New(bucket *Bucket) (ObjectStore, error) {
	switch bucket.StorageType {
	case StorageTypeFile:
		disk, err := NewDiskStorage(bucket)
		if err != nil {
			return nil, err
		}
		return disk, nil
	case StorageTypeS3:
		return NewS3Storage(bucket)
	}
	return nil, fmt.Errorf("storage type unavailable: %d", bucket.StorageType)
}

// objectKey creates a unique key, keeping the (lower case) extension of the original file name.
// For example: wedding/0190f1d2-8f6e-7c4e-9a51-3c7d1c1b2f70.jpg
func objectKey(prefix, fileName string) string {
	ext := strings.ToLower(filepath.Ext(utils.SafeFileName(fileName)))
	if len(ext) > 10 {
		ext = ""
	}
	return prefix + uuid.NewString() + ext
}
