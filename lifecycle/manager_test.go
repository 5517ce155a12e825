package lifecycle

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"gallery/models"
	"gallery/records"
	"gallery/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	mu      sync.Mutex
	deleted []string
	fail    bool
}

func (f *fakeObjects) Upload(ctx context.Context, body io.Reader, fileName, mimeType string) (storage.StoredObject, error) {
	return storage.StoredObject{}, errors.New("not supported")
}

func (f *fakeObjects) Delete(ctx context.Context, objectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("bucket unreachable")
	}
	f.deleted = append(f.deleted, objectID)
	return nil
}

// failingStore fails every delete of the given id
type failingStore struct {
	records.Store
	failID string
}

func (s failingStore) DeleteWish(ctx context.Context, id string) error {
	if id == s.failID {
		return &models.StoreError{Op: "delete wish", Err: errors.New("timeout")}
	}
	return s.Store.DeleteWish(ctx, id)
}

func (s failingStore) DeletePhoto(ctx context.Context, id string) error {
	if id == s.failID {
		return &models.StoreError{Op: "delete photo", Err: errors.New("timeout")}
	}
	return s.Store.DeletePhoto(ctx, id)
}

var base = time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC)

func addWishes(t *testing.T, store records.Store, n int) []string {
	ids := []string{}
	for i := 0; i < n; i++ {
		w := models.NewWish("Guest", "Cheers", "", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.CreateWish(context.Background(), &w))
		ids = append(ids, w.ID)
	}
	return ids
}

func addPhoto(t *testing.T, store records.Store, url, objectID, name string, at time.Time) models.Photo {
	p := models.NewPhoto(url, objectID, name, "", at)
	require.NoError(t, store.CreatePhoto(context.Background(), &p))
	return p
}

func TestDeleteWishes_IsolatesFailures(t *testing.T) {
	store := records.NewMemoryStore()
	ids := addWishes(t, store, 3)
	m := &Manager{Records: failingStore{Store: store, failID: ids[1]}}

	result := m.DeleteWishes(context.Background(), ids)
	assert.Equal(t, 2, result.DeletedCount)
	assert.Equal(t, []string{ids[1]}, result.FailedIDs)

	left, err := store.ListWishes(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, ids[1], left[0].ID)
}

func TestDeleteWishes_UnknownAndEmpty(t *testing.T) {
	store := records.NewMemoryStore()
	ids := addWishes(t, store, 2)
	m := &Manager{Records: store, Concurrency: 1}

	result := m.DeleteWishes(context.Background(), []string{"missing", ids[0], "also-missing"})
	assert.Equal(t, 1, result.DeletedCount)
	assert.Equal(t, []string{"missing", "also-missing"}, result.FailedIDs)

	result = m.DeleteWishes(context.Background(), nil)
	assert.Equal(t, 0, result.DeletedCount)
	assert.NotNil(t, result.FailedIDs)
}

func TestDeletePhoto(t *testing.T) {
	store := records.NewMemoryStore()
	objects := &fakeObjects{}
	m := &Manager{Records: store, Objects: objects}
	photo := addPhoto(t, store, "https://cdn/a.jpg", "wedding/a.jpg", "a.jpg", base)

	require.NoError(t, m.DeletePhoto(context.Background(), photo.ID))
	assert.Equal(t, []string{"wedding/a.jpg"}, objects.deleted)
	assert.ErrorIs(t, m.DeletePhoto(context.Background(), photo.ID), models.ErrNotFound)
}

func TestDeletePhoto_ObjectFailureStillRemovesRecord(t *testing.T) {
	store := records.NewMemoryStore()
	m := &Manager{Records: store, Objects: &fakeObjects{fail: true}}
	photo := addPhoto(t, store, "https://cdn/a.jpg", "wedding/a.jpg", "a.jpg", base)

	require.NoError(t, m.DeletePhoto(context.Background(), photo.ID))
	_, err := store.GetPhoto(context.Background(), photo.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeletePhotos(t *testing.T) {
	store := records.NewMemoryStore()
	objects := &fakeObjects{}
	ids := []string{}
	for i, name := range []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"} {
		p := addPhoto(t, store, "https://cdn/"+name, "wedding/"+name, name, base.Add(time.Duration(i)*time.Second))
		ids = append(ids, p.ID)
	}
	m := &Manager{Records: failingStore{Store: store, failID: ids[2]}, Objects: objects, Concurrency: 2}

	result := m.DeletePhotos(context.Background(), ids)
	assert.Equal(t, 3, result.DeletedCount)
	assert.Equal(t, []string{ids[2]}, result.FailedIDs)
	sort.Strings(objects.deleted)
	assert.Equal(t, []string{"wedding/a.jpg", "wedding/b.jpg", "wedding/c.jpg", "wedding/d.jpg"}, objects.deleted)
}

func TestExportPhotosArchive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken.jpg":
			http.Error(w, "gone", http.StatusNotFound)
		default:
			w.Write([]byte("image:" + r.URL.Path))
		}
	}))
	defer server.Close()

	store := records.NewMemoryStore()
	oldest := addPhoto(t, store, server.URL+"/1.jpg", "", "cake.jpg", base)
	broken := addPhoto(t, store, server.URL+"/broken.jpg", "", "broken.jpg", base.Add(time.Minute))
	addPhoto(t, store, server.URL+"/3.jpg", "", "cake.jpg", base.Add(2*time.Minute))
	addPhoto(t, store, server.URL+"/nested/kiss.png", "", "", base.Add(3*time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // a disconnected client must not abort the export
	m := &Manager{Records: store, HTTPClient: server.Client(), FetchTimeout: time.Second}
	buf := &bytes.Buffer{}
	result, err := m.ExportPhotosArchive(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Included)
	assert.Equal(t, []string{broken.ID}, result.Skipped)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	names := []string{}
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"kiss.png", "cake.jpg", "cake (2).jpg"}, names)

	f, err := zr.File[2].Open()
	require.NoError(t, err)
	defer f.Close()
	data, _ := io.ReadAll(f)
	assert.Equal(t, "image:/1.jpg", string(data))
	assert.Equal(t, oldest.CreatedAt, zr.File[2].Modified.UTC())
}

func TestExportPhotosArchive_SkipsSlowAndOversizedPhotos(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/slow.jpg":
			select {
			case <-release:
			case <-r.Context().Done():
			}
		case "/huge.jpg":
			w.Write(bytes.Repeat([]byte("x"), 64))
		default:
			w.Write([]byte("ok"))
		}
	}))
	defer server.Close()
	defer close(release)

	store := records.NewMemoryStore()
	addPhoto(t, store, server.URL+"/1.jpg", "", "first.jpg", base)
	slow := addPhoto(t, store, server.URL+"/slow.jpg", "", "slow.jpg", base.Add(time.Minute))
	huge := addPhoto(t, store, server.URL+"/huge.jpg", "", "huge.jpg", base.Add(2*time.Minute))
	addPhoto(t, store, server.URL+"/4.jpg", "", "last.jpg", base.Add(3*time.Minute))

	m := &Manager{
		Records:      store,
		HTTPClient:   server.Client(),
		FetchTimeout: 50 * time.Millisecond,
		MaxPhotoSize: 16,
	}
	started := time.Now()
	result, err := m.ExportPhotosArchive(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Less(t, time.Since(started), 5*time.Second)
	assert.Equal(t, 2, result.Included)
	assert.Equal(t, []string{huge.ID, slow.ID}, result.Skipped)
}

func TestExportWishesCSV(t *testing.T) {
	store := records.NewMemoryStore()
	m := &Manager{Records: store}
	assert.ErrorIs(t, m.ExportWishesCSV(context.Background(), io.Discard), ErrNothingToExport)
	assert.ErrorIs(t, m.ExportWishesPDF(context.Background(), io.Discard), ErrNothingToExport)

	first := models.NewWish("Alice", `So happy for you, "lovebirds"`, "", base)
	second := models.NewWish("Bob", "Cheers", "", base.Add(time.Hour))
	require.NoError(t, store.CreateWish(context.Background(), &first))
	require.NoError(t, store.CreateWish(context.Background(), &second))

	buf := &bytes.Buffer{}
	require.NoError(t, m.ExportWishesCSV(context.Background(), buf))
	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Name", "Message", "Date"},
		{"Bob", "Cheers", "14/06/2025, 16:00:00"},
		{"Alice", `So happy for you, "lovebirds"`, "14/06/2025, 15:00:00"},
	}, rows)

	buf.Reset()
	require.NoError(t, m.ExportWishesPDF(context.Background(), buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
