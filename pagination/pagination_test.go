package pagination

import (
	"context"
	"math"
	"testing"
	"time"

	"gallery/models"
	"gallery/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		wantErr   bool
		wantLimit int
	}{
		{"defaults", Request{Page: DefaultPage, Limit: DefaultLimit}, false, 10},
		{"zero page", Request{Page: 0, Limit: 10}, true, 10},
		{"negative limit", Request{Page: 1, Limit: -5}, true, -5},
		{"limit capped", Request{Page: 3, Limit: 1000}, false, MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.True(t, models.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantLimit, tt.req.Limit)
		})
	}
}

func TestRequest_Skip(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want int
	}{
		{"first page", Request{Page: 1, Limit: 10}, 0},
		{"third page", Request{Page: 3, Limit: 10}, 20},
		{"huge page saturates", Request{Page: math.MaxInt/10 + 2, Limit: 10}, math.MaxInt},
		{"max page", Request{Page: math.MaxInt, Limit: MaxLimit}, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Skip())
		})
	}
}

func seedWishes(t *testing.T, n int) *records.MemoryStore {
	store := records.NewMemoryStore()
	base := time.Date(2025, 6, 14, 18, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		w := models.NewWish("Guest", "Best wishes", "", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.CreateWish(context.Background(), &w))
	}
	return store
}

func TestEngine_ListWishes(t *testing.T) {
	engine := &Engine{Store: seedWishes(t, 25)}
	tests := []struct {
		page, limit int
		wantItems   int
		wantHasMore bool
	}{
		{1, 10, 10, true},
		{2, 10, 10, true},
		{3, 10, 5, false},
		{4, 10, 0, false},
		{1, 25, 25, false},
		{1, 100, 25, false},
		{math.MaxInt/10 + 2, 10, 0, false},
		{math.MaxInt, 100, 0, false},
	}
	for _, tt := range tests {
		page, err := engine.ListWishes(context.Background(), Request{Page: tt.page, Limit: tt.limit})
		require.NoError(t, err)
		assert.Len(t, page.Items, tt.wantItems, "page %d limit %d", tt.page, tt.limit)
		assert.Equal(t, tt.wantHasMore, page.HasMore, "page %d limit %d", tt.page, tt.limit)
		assert.EqualValues(t, 25, page.TotalCount)
		assert.NotNil(t, page.Items)
		for i := 1; i < len(page.Items); i++ {
			assert.False(t, page.Items[i].CreatedAt.After(page.Items[i-1].CreatedAt))
		}
	}
}

func TestEngine_ListWishesPagesAreDisjoint(t *testing.T) {
	engine := &Engine{Store: seedWishes(t, 7)}
	seen := map[string]bool{}
	for p := 1; ; p++ {
		page, err := engine.ListWishes(context.Background(), Request{Page: p, Limit: 3})
		require.NoError(t, err)
		for _, w := range page.Items {
			assert.False(t, seen[w.ID])
			seen[w.ID] = true
		}
		assert.EqualValues(t, 3, page.Pages)
		if !page.HasMore {
			break
		}
	}
	assert.Len(t, seen, 7)
}

func TestEngine_ListWishesInvalid(t *testing.T) {
	engine := &Engine{Store: seedWishes(t, 1)}
	_, err := engine.ListWishes(context.Background(), Request{Page: 0, Limit: 10})
	assert.True(t, models.IsValidation(err))
}

func TestEngine_ListPhotos(t *testing.T) {
	store := records.NewMemoryStore()
	engine := &Engine{Store: store}

	photos, err := engine.ListPhotos(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, photos)
	assert.Empty(t, photos)

	p := models.NewPhoto("https://cdn/x.jpg", "x.jpg", "x.jpg", "device", time.Now())
	require.NoError(t, store.CreatePhoto(context.Background(), &p))
	photos, err = engine.ListPhotos(context.Background(), "device")
	require.NoError(t, err)
	assert.Len(t, photos, 1)
}
