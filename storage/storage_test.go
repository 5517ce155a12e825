package storage

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStorage_UploadServeDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStorage(&Bucket{Path: dir, PublicURL: "http://guests.example/files/"})
	require.NoError(t, err)

	obj, err := store.Upload(context.Background(), strings.NewReader("jpeg bytes"), "Our Day.JPG", "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(obj.ObjectID, ".jpg"))
	assert.Equal(t, "http://guests.example/files/"+obj.ObjectID, obj.URL)

	content, err := os.ReadFile(filepath.Join(dir, obj.ObjectID))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(content))

	rec := httptest.NewRecorder()
	store.Serve("/"+obj.ObjectID, httptest.NewRequest("GET", "/files/"+obj.ObjectID, nil), rec)
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "jpeg bytes", rec.Body.String())

	require.NoError(t, store.Delete(context.Background(), obj.ObjectID))
	assert.Error(t, store.Delete(context.Background(), obj.ObjectID))
}

func TestDiskStorage_StaysInsideBasePath(t *testing.T) {
	parent := t.TempDir()
	base := filepath.Join(parent, "photos")
	store, err := NewDiskStorage(&Bucket{Path: base})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("x"), 0o600))

	assert.Error(t, store.Delete(context.Background(), "../secret.txt"))
	_, err = os.Stat(filepath.Join(parent, "secret.txt"))
	assert.NoError(t, err)
}

func TestDiskStorage_FreeSpace(t *testing.T) {
	store, err := NewDiskStorage(&Bucket{Path: t.TempDir()})
	require.NoError(t, err)
	free, err := store.FreeSpace()
	require.NoError(t, err)
	assert.Greater(t, free, uint64(0))
}

func Test_objectKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		fileName string
		wantExt  string
	}{
		{"keeps extension lower case", "wedding/", "IMG_0001.JPEG", ".jpeg"},
		{"no extension", "", "photo", ""},
		{"unsafe name", "w/", "../../etc/passwd.png", ".png"},
		{"absurd extension dropped", "", "a.thisisnotanextension", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := objectKey(tt.prefix, tt.fileName)
			assert.True(t, strings.HasPrefix(key, tt.prefix))
			assert.Equal(t, tt.wantExt, filepath.Ext(strings.TrimPrefix(key, tt.prefix)))
			assert.NotContains(t, strings.TrimPrefix(key, tt.prefix), "/")
		})
	}
}

type fakeS3 struct {
	s3iface.S3API
	deleted []string
}

func (f *fakeS3) DeleteObjectWithContext(ctx aws.Context, in *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.StringValue(in.Bucket)+":"+aws.StringValue(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage(t *testing.T) {
	fake := &fakeS3{}
	store := &S3Storage{Bucket: Bucket{Name: "guests", PublicURL: "https://f004.backblazeb2.com/file/guests/"}, s3Client: fake}

	assert.Equal(t, "https://f004.backblazeb2.com/file/guests/wedding/a.jpg", store.publicURL("wedding/a.jpg", "https://ignored"))
	store.Bucket.PublicURL = ""
	assert.Equal(t, "https://location/wedding/a.jpg", store.publicURL("wedding/a.jpg", "https://location/wedding/a.jpg"))

	require.NoError(t, store.Delete(context.Background(), "wedding/a.jpg"))
	assert.Equal(t, []string{"guests:wedding/a.jpg"}, fake.deleted)
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(&Bucket{StorageType: 9})
	assert.Error(t, err)
}
