// Package lifecycle is the admin side of the gallery: single and bulk
// deletion across both stores, and exports of the whole collection.
package lifecycle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"time"

	"gallery/export"
	"gallery/metrics"
	"gallery/models"
	"gallery/records"
	"gallery/storage"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultConcurrency  = 8
	DefaultMaxPhotoSize = 50 << 20
)

// ErrNothingToExport is returned by the wish exports when the guestbook is empty
var ErrNothingToExport = errors.New("No wishes found to download")

// BatchResult has the failed ids in input order
type BatchResult struct {
	DeletedCount int      `json:"deleted"`
	FailedIDs    []string `json:"failed"`
}

type ArchiveResult struct {
	Included int
	Skipped  []string // ids of photos that could not be fetched
}

type Manager struct {
	Records      records.Store
	Objects      storage.ObjectStore // optional, objects are left behind without it
	HTTPClient   *http.Client
	FetchTimeout time.Duration
	Concurrency  int
	MaxPhotoSize int64 // per archived photo, DefaultMaxPhotoSize if 0
	Now          func() time.Time
}

func (m *Manager) concurrency() int {
	if m.Concurrency > 0 {
		return m.Concurrency
	}
	return DefaultConcurrency
}

func (m *Manager) fetchTimeout() time.Duration {
	if m.FetchTimeout > 0 {
		return m.FetchTimeout
	}
	return DefaultFetchTimeout
}

func (m *Manager) maxPhotoSize() int64 {
	if m.MaxPhotoSize > 0 {
		return m.MaxPhotoSize
	}
	return DefaultMaxPhotoSize
}

func (m *Manager) httpClient() *http.Client {
	if m.HTTPClient != nil {
		return m.HTTPClient
	}
	return http.DefaultClient
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// DeletePhoto removes the stored object (best effort) and then the record
func (m *Manager) DeletePhoto(ctx context.Context, id string) error {
	photo, err := m.Records.GetPhoto(ctx, id)
	if err != nil {
		return err
	}
	if photo.ObjectID != "" && m.Objects != nil {
		if err = m.Objects.Delete(ctx, photo.ObjectID); err != nil {
			log.Printf("Lifecycle: cannot delete object %s of photo %s: %v", photo.ObjectID, id, err)
		}
	}
	if err = m.Records.DeletePhoto(ctx, id); err != nil {
		return err
	}
	metrics.Deletion(metrics.KindPhoto, metrics.OutcomeDeleted)
	return nil
}

func (m *Manager) DeleteWish(ctx context.Context, id string) error {
	if err := m.Records.DeleteWish(ctx, id); err != nil {
		return err
	}
	metrics.Deletion(metrics.KindWish, metrics.OutcomeDeleted)
	return nil
}

func (m *Manager) DeletePhotos(ctx context.Context, ids []string) BatchResult {
	return m.deleteAll(ctx, ids, metrics.KindPhoto, m.DeletePhoto)
}

func (m *Manager) DeleteWishes(ctx context.Context, ids []string) BatchResult {
	return m.deleteAll(ctx, ids, metrics.KindWish, m.DeleteWish)
}

// deleteAll runs every delete, a failing item never stops the others
func (m *Manager) deleteAll(ctx context.Context, ids []string, kind string, del func(context.Context, string) error) BatchResult {
	errs := make([]error, len(ids))
	g := errgroup.Group{}
	g.SetLimit(m.concurrency())
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			errs[i] = del(ctx, id)
			return nil
		})
	}
	g.Wait()

	result := BatchResult{FailedIDs: []string{}}
	for i, err := range errs {
		if err != nil {
			log.Printf("Lifecycle: cannot delete %s %s: %v", kind, ids[i], err)
			metrics.Deletion(kind, metrics.OutcomeFailed)
			result.FailedIDs = append(result.FailedIDs, ids[i])
			continue
		}
		result.DeletedCount++
	}
	return result
}

// ExportPhotosArchive downloads every photo from its public URL and writes
// them to w as a ZIP archive, newest first. Entries are written in order as
// soon as their download finishes. Photos that cannot be fetched in time, or
// are larger than MaxPhotoSize, are skipped. Cancelling ctx (e.g. a client
// disconnect) does not stop it.
func (m *Manager) ExportPhotosArchive(ctx context.Context, w io.Writer) (ArchiveResult, error) {
	ctx = context.WithoutCancel(ctx)
	photos, err := m.Records.ListPhotos(ctx, "")
	if err != nil {
		return ArchiveResult{}, err
	}

	fetched := make([]chan []byte, len(photos))
	for i := range fetched {
		fetched[i] = make(chan []byte, 1)
	}
	go func() {
		g := errgroup.Group{}
		g.SetLimit(m.concurrency())
		for i := range photos {
			i := i
			g.Go(func() error {
				data, err := m.fetch(ctx, photos[i].URL)
				if err != nil {
					log.Printf("Lifecycle: skipping photo %s in archive: %v", photos[i].ID, err)
				}
				fetched[i] <- data
				return nil
			})
		}
		g.Wait()
	}()

	result := ArchiveResult{Skipped: []string{}}
	archive := export.NewArchiveWriter(w)
	for i, photo := range photos {
		data := <-fetched[i]
		if data == nil {
			metrics.ExportItem(metrics.OutcomeSkipped)
			result.Skipped = append(result.Skipped, photo.ID)
			continue
		}
		if _, err = archive.Add(archiveName(photo), photo.CreatedAt, bytes.NewReader(data)); err != nil {
			return result, err
		}
		metrics.ExportItem(metrics.OutcomeIncluded)
		result.Included++
	}
	return result, archive.Close()
}

// fetch returns nil data on any error
func (m *Manager) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, m.fetchTimeout())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := m.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	limit := m.maxPhotoSize()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("photo is larger than %d bytes", limit)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// archiveName prefers the original file name, then the last URL segment
func archiveName(photo models.Photo) string {
	if photo.OriginalName != "" {
		return photo.OriginalName
	}
	if u, err := url.Parse(photo.URL); err == nil {
		if base := path.Base(u.Path); base != "/" && base != "." {
			return base
		}
	}
	return photo.ID + ".jpg"
}

func (m *Manager) allWishes(ctx context.Context) ([]models.Wish, error) {
	wishes, err := m.Records.ListWishes(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	if len(wishes) == 0 {
		return nil, ErrNothingToExport
	}
	return wishes, nil
}

// ExportWishesCSV writes every wish, newest first
func (m *Manager) ExportWishesCSV(ctx context.Context, w io.Writer) error {
	wishes, err := m.allWishes(ctx)
	if err != nil {
		return err
	}
	return export.WriteWishesCSV(w, wishes)
}

func (m *Manager) ExportWishesPDF(ctx context.Context, w io.Writer) error {
	wishes, err := m.allWishes(ctx)
	if err != nil {
		return err
	}
	return export.WriteWishesPDF(w, wishes, m.now())
}
