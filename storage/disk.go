package storage

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// FilesRoute is where the disk storage objects are served from
const FilesRoute = "/files"

type DiskStorage struct {
	// BasePath is a directory (usually mount point of a disk) that is writable by the current process
	BasePath  string
	PublicURL string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(bucket *Bucket) (*DiskStorage, error) {
	if bucket.Path == "" {
		return nil, errors.New("empty disk storage path")
	}
	if err := os.MkdirAll(bucket.Path, 0o755); err != nil {
		return nil, err
	}
	log.Printf("Object store: disk %s", bucket.Path)
	return &DiskStorage{
		BasePath:  bucket.Path,
		PublicURL: strings.TrimSuffix(bucket.PublicURL, "/"),
		dirs:      make(map[string]bool, 10),
	}, nil
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	s.dirs[dir] = true
	return nil
}

// getFullPath refuses anything that would resolve outside BasePath
func (s *DiskStorage) getFullPath(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	if clean == "/" {
		return "", errors.New("empty object path")
	}
	return filepath.Join(s.BasePath, clean), nil
}

func (s *DiskStorage) Upload(ctx context.Context, body io.Reader, fileName, mimeType string) (StoredObject, error) {
	key := objectKey("", fileName)
	fullPath, err := s.getFullPath(key)
	if err != nil {
		return StoredObject{}, err
	}
	if err = s.createDir(filepath.Dir(fullPath)); err != nil {
		return StoredObject{}, err
	}
	file, err := os.Create(fullPath)
	if err != nil {
		return StoredObject{}, err
	}
	_, err = io.Copy(file, body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		return StoredObject{}, err
	}
	return StoredObject{URL: s.PublicURL + "/" + key, ObjectID: key}, nil
}

func (s *DiskStorage) Delete(ctx context.Context, objectID string) error {
	fullPath, err := s.getFullPath(objectID)
	if err != nil {
		return err
	}
	return os.Remove(fullPath)
}

// Serve handles byte ranges too
func (s *DiskStorage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	fullPath, err := s.getFullPath(path)
	if err != nil {
		http.NotFound(writer, request)
		return
	}
	http.ServeFile(writer, request, fullPath)
}

// FreeSpace returns the bytes available to us on the disk holding BasePath
func (s *DiskStorage) FreeSpace() (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(s.BasePath, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
