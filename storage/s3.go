package storage

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Storage works with AWS S3 and S3 compatible services like Backblaze B2
type S3Storage struct {
	Bucket   Bucket
	s3Client s3iface.S3API
}

func (b *Bucket) CreateSVC() (*s3.S3, error) {
	cfg := &aws.Config{
		Region:           aws.String(b.Region),
		Credentials:      credentials.NewStaticCredentials(b.S3Key, b.S3Secret, ""),
		S3ForcePathStyle: aws.Bool(b.ForcePathStyle),
	}
	if b.Endpoint != "" {
		cfg.Endpoint = aws.String(b.Endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return s3.New(sess), nil
}

func NewS3Storage(bucket *Bucket) (ObjectStore, error) {
	client, err := bucket.CreateSVC()
	if err != nil {
		return nil, err
	}
	log.Printf("Object store: S3 bucket %s (endpoint: %q, prefix: %q)", bucket.Name, bucket.Endpoint, bucket.Path)
	return &S3Storage{Bucket: *bucket, s3Client: client}, nil
}

func (s *S3Storage) Upload(ctx context.Context, body io.Reader, fileName, mimeType string) (StoredObject, error) {
	key := objectKey(s.Bucket.Path, fileName)
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	out, err := uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.Bucket.Name),
		Key:         aws.String(key),
		ContentType: aws.String(mimeType),
		Body:        body,
	})
	if err != nil {
		return StoredObject{}, err
	}
	return StoredObject{URL: s.publicURL(key, out.Location), ObjectID: key}, nil
}

func (s *S3Storage) publicURL(key, location string) string {
	if s.Bucket.PublicURL == "" {
		return location
	}
	return strings.TrimSuffix(s.Bucket.PublicURL, "/") + "/" + key
}

func (s *S3Storage) Delete(ctx context.Context, objectID string) error {
	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket.Name),
		Key:    aws.String(objectID),
	})
	return err
}
