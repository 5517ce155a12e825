package records

import (
	"context"
	"sort"
	"sync"

	"gallery/models"
)

// MemoryStore keeps everything in process. Used when no database is
// configured and in tests; data is lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	photos map[string]models.Photo
	wishes map[string]models.Wish
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		photos: map[string]models.Photo{},
		wishes: map[string]models.Wish{},
	}
}

func (s *MemoryStore) CreatePhoto(ctx context.Context, photo *models.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos[photo.ID] = *photo
	return nil
}

func (s *MemoryStore) GetPhoto(ctx context.Context, id string) (*models.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	photo, ok := s.photos[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &photo, nil
}

func (s *MemoryStore) ListPhotos(ctx context.Context, guestID string) ([]models.Photo, error) {
	s.mu.RLock()
	result := []models.Photo{}
	for _, p := range s.photos {
		if guestID == "" || p.GuestID == guestID {
			result = append(result, p)
		}
	}
	s.mu.RUnlock()
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *MemoryStore) DeletePhoto(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.photos, id)
	return nil
}

func (s *MemoryStore) CreateWish(ctx context.Context, wish *models.Wish) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishes[wish.ID] = *wish
	return nil
}

func (s *MemoryStore) CountWishes(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.wishes)), nil
}

func (s *MemoryStore) ListWishes(ctx context.Context, skip, limit int) ([]models.Wish, error) {
	s.mu.RLock()
	all := make([]models.Wish, 0, len(s.wishes))
	for _, w := range s.wishes {
		all = append(all, w)
	}
	s.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	if skip >= len(all) {
		return []models.Wish{}, nil
	}
	all = all[max(skip, 0):]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *MemoryStore) DeleteWish(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wishes[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.wishes, id)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
