// Package records is the record store adapter: the Photos and Wishes
// collections behind one interface, backed by gorm, MongoDB or memory.
package records

import (
	"context"

	"gallery/models"
)

// Store must be safe for concurrent use. Lists are always ordered newest
// first (CreatedAt descending, then ID descending). Lookups and deletes of
// unknown ids return models.ErrNotFound, other failures a *models.StoreError.
type Store interface {
	CreatePhoto(ctx context.Context, photo *models.Photo) error
	GetPhoto(ctx context.Context, id string) (*models.Photo, error)
	// ListPhotos returns all photos, or only those of guestID when it is not empty
	ListPhotos(ctx context.Context, guestID string) ([]models.Photo, error)
	DeletePhoto(ctx context.Context, id string) error

	CreateWish(ctx context.Context, wish *models.Wish) error
	CountWishes(ctx context.Context) (int64, error)
	// ListWishes skips `skip` wishes and returns at most `limit`, all of them if limit <= 0
	ListWishes(ctx context.Context, skip, limit int) ([]models.Wish, error)
	DeleteWish(ctx context.Context, id string) error

	Close(ctx context.Context) error
}

func storeError(op string, err error) error {
	return &models.StoreError{Op: op, Err: err}
}
