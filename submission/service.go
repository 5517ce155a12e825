// Package submission accepts guest photos and guestbook wishes.
//
// A submission moves Received -> Validated -> Stored -> Visible. Rejections
// only happen before anything is written, so a rejected submission never
// leaves a trace in either store.
package submission

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"gallery/metrics"
	"gallery/models"
	"gallery/moderation"
	"gallery/quota"
	"gallery/records"
	"gallery/storage"

	"github.com/gabriel-vasile/mimetype"
)

const sniffLength = 3072

type PhotoSubmission struct {
	DeviceID      string
	ReportedCount int // uploads the device claims to have made so far
	FileName      string
	MimeType      string
	Body          io.Reader
}

type WishSubmission struct {
	DeviceID string
	Name     string
	Message  string
}

type Service struct {
	Objects storage.ObjectStore
	Records records.Store
	Quota   quota.Authority
	Filter  *moderation.Filter
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) filter() *moderation.Filter {
	if s.Filter != nil {
		return s.Filter
	}
	return moderation.Default()
}

func (s *Service) SubmitPhoto(ctx context.Context, sub PhotoSubmission) (*models.Photo, error) {
	photo, err := s.submitPhoto(ctx, sub)
	switch {
	case err == nil:
		metrics.Submission(metrics.KindPhoto, metrics.OutcomeStored)
	case models.IsValidation(err):
		metrics.Submission(metrics.KindPhoto, metrics.OutcomeRejected)
	default:
		metrics.Submission(metrics.KindPhoto, metrics.OutcomeFailed)
	}
	return photo, err
}

func (s *Service) submitPhoto(ctx context.Context, sub PhotoSubmission) (*models.Photo, error) {
	if sub.Body == nil {
		return nil, models.Invalid("No file uploaded")
	}
	body, mimeType, err := detectType(sub.Body, sub.MimeType)
	if err != nil {
		return nil, &models.UploadError{Err: err}
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, models.Invalid("Only image files are allowed")
	}
	if sub.ReportedCount < 0 {
		return nil, models.Invalid("uploadedCount must not be negative")
	}
	if sub.DeviceID != "" && !s.Quota.Reserve(sub.DeviceID, 1, sub.ReportedCount) {
		return nil, models.Invalid("Upload limit reached for this device")
	}
	release := func() {
		if sub.DeviceID != "" {
			s.Quota.Release(sub.DeviceID, 1)
		}
	}

	object, err := s.Objects.Upload(ctx, body, sub.FileName, mimeType)
	if err != nil {
		release()
		log.Printf("Submission: upload of %q failed: %v", sub.FileName, err)
		return nil, &models.UploadError{Err: err}
	}
	photo := models.NewPhoto(object.URL, object.ObjectID, sub.FileName, sub.DeviceID, s.now())
	if err = s.Records.CreatePhoto(ctx, &photo); err != nil {
		release()
		log.Printf("Submission: orphaned object %s, record write failed: %v", object.ObjectID, err)
		var storeErr *models.StoreError
		if !errors.As(err, &storeErr) {
			err = &models.StoreError{Op: "create photo", Err: err}
		}
		return nil, err
	}
	return &photo, nil
}

// detectType sniffs the content when the declared type is missing or generic.
// The returned reader still yields the whole body.
func detectType(body io.Reader, declared string) (io.Reader, string, error) {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if declared != "" && declared != "application/octet-stream" {
		return body, declared, nil
	}
	header := make([]byte, sniffLength)
	n, err := io.ReadFull(body, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, "", err
	}
	header = header[:n]
	mt := mimetype.Detect(header)
	return io.MultiReader(bytes.NewReader(header), body), mt.String(), nil
}

func (s *Service) SubmitWish(ctx context.Context, sub WishSubmission) (*models.Wish, error) {
	wish, err := s.submitWish(ctx, sub)
	switch {
	case err == nil:
		metrics.Submission(metrics.KindWish, metrics.OutcomeStored)
	case models.IsValidation(err):
		metrics.Submission(metrics.KindWish, metrics.OutcomeRejected)
	default:
		metrics.Submission(metrics.KindWish, metrics.OutcomeFailed)
	}
	return wish, err
}

func (s *Service) submitWish(ctx context.Context, sub WishSubmission) (*models.Wish, error) {
	name := strings.TrimSpace(sub.Name)
	message := strings.TrimSpace(sub.Message)
	if name == "" || message == "" {
		return nil, models.Invalid("Name and message are required")
	}
	if utf8.RuneCountInString(name) > models.MaxWishNameLength {
		return nil, models.Invalid("Name must be at most %d characters", models.MaxWishNameLength)
	}
	if utf8.RuneCountInString(message) > models.MaxWishMessageLength {
		return nil, models.Invalid("Message must be at most %d characters", models.MaxWishMessageLength)
	}
	filter := s.filter()
	if filter.ContainsDisallowedContent(name) {
		return nil, models.Invalid("Name contains inappropriate language")
	}
	if filter.ContainsDisallowedContent(message) {
		return nil, models.Invalid("Message contains inappropriate language")
	}

	wish := models.NewWish(name, message, sub.DeviceID, s.now())
	if err := s.Records.CreateWish(ctx, &wish); err != nil {
		var storeErr *models.StoreError
		if !errors.As(err, &storeErr) {
			err = &models.StoreError{Op: "create wish", Err: err}
		}
		return nil, err
	}
	return &wish, nil
}
