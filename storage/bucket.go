package storage

import (
	"errors"
	"strings"

	"gallery/config"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

// Bucket describes where guest uploads are kept
type Bucket struct {
	Name           string // S3 bucket name
	StorageType    StorageType
	Path           string // Path on a drive or a prefix in a S3 bucket
	Endpoint       string // Custom S3 endpoint (Backblaze B2, MinIO, ...), empty for AWS
	Region         string
	S3Key          string
	S3Secret       string
	PublicURL      string // Public URL the objects are reachable at
	ForcePathStyle bool
}

// BucketFromConfig builds the bucket from the OBJECT_STORE and S3_* / DISK_DIR settings
func BucketFromConfig() (*Bucket, error) {
	switch strings.ToLower(config.OBJECT_STORE) {
	case "", "disk", "file":
		return &Bucket{
			StorageType: StorageTypeFile,
			Path:        config.DISK_DIR,
			PublicURL:   strings.TrimSuffix(config.PUBLIC_BASE_URL, "/") + FilesRoute,
		}, nil
	case "s3", "b2":
		b := &Bucket{
			Name:           config.S3_BUCKET,
			StorageType:    StorageTypeS3,
			Path:           config.S3_PREFIX,
			Endpoint:       config.S3_ENDPOINT,
			Region:         config.S3_REGION,
			S3Key:          config.S3_KEY,
			S3Secret:       config.S3_SECRET,
			PublicURL:      config.S3_PUBLIC_URL,
			ForcePathStyle: config.S3_FORCE_PATH_STYLE,
		}
		return b, b.validate()
	}
	return nil, errors.New("OBJECT_STORE must be one of 'disk' or 's3'")
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

func (b *Bucket) validate() error {
	if b.Name == "" {
		return errors.New("S3_BUCKET must be provided")
	}
	if b.S3Key == "" || b.S3Secret == "" {
		return errors.New("'S3 Key' and 'S3 Secret' must be provided")
	}
	if b.Region == "" {
		b.Region = "us-east-1"
	}
	return nil
}
