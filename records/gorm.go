package records

import (
	"context"
	"errors"

	"gallery/models"

	"gorm.io/gorm"
)

const newestFirst = "created_at DESC, id DESC"

type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the photos and wishes tables and returns the store
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := models.Migrate(db); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) CreatePhoto(ctx context.Context, photo *models.Photo) error {
	if err := s.db.WithContext(ctx).Create(photo).Error; err != nil {
		return storeError("create photo", err)
	}
	return nil
}

func (s *GormStore) GetPhoto(ctx context.Context, id string) (*models.Photo, error) {
	photo := models.Photo{}
	err := s.db.WithContext(ctx).First(&photo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, storeError("get photo", err)
	}
	return &photo, nil
}

func (s *GormStore) ListPhotos(ctx context.Context, guestID string) ([]models.Photo, error) {
	tx := s.db.WithContext(ctx).Order(newestFirst)
	if guestID != "" {
		tx = tx.Where("guest_id = ?", guestID)
	}
	result := []models.Photo{}
	if err := tx.Find(&result).Error; err != nil {
		return nil, storeError("list photos", err)
	}
	return result, nil
}

func (s *GormStore) DeletePhoto(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Photo{}, "id = ?", id)
	if result.Error != nil {
		return storeError("delete photo", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateWish(ctx context.Context, wish *models.Wish) error {
	if err := s.db.WithContext(ctx).Create(wish).Error; err != nil {
		return storeError("create wish", err)
	}
	return nil
}

func (s *GormStore) CountWishes(ctx context.Context) (total int64, err error) {
	if err = s.db.WithContext(ctx).Model(&models.Wish{}).Count(&total).Error; err != nil {
		return 0, storeError("count wishes", err)
	}
	return total, nil
}

func (s *GormStore) ListWishes(ctx context.Context, skip, limit int) ([]models.Wish, error) {
	tx := s.db.WithContext(ctx).Order(newestFirst)
	if skip > 0 {
		tx = tx.Offset(skip)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	result := []models.Wish{}
	if err := tx.Find(&result).Error; err != nil {
		return nil, storeError("list wishes", err)
	}
	return result, nil
}

func (s *GormStore) DeleteWish(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Wish{}, "id = ?", id)
	if result.Error != nil {
		return storeError("delete wish", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *GormStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
