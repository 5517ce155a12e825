// Package pagination turns page/limit requests into record store skip/limit
// queries and reports where the page sits in the collection.
package pagination

import (
	"context"
	"math"

	"gallery/models"
	"gallery/records"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Request struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Validate rejects non positive values and caps Limit at MaxLimit
func (r *Request) Validate() error {
	if r.Page < 1 {
		return models.Invalid("page must be a positive integer")
	}
	if r.Limit < 1 {
		return models.Invalid("limit must be a positive integer")
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	return nil
}

// Skip saturates at math.MaxInt, so a huge page is past the end instead of wrapping around
func (r Request) Skip() int {
	if r.Page <= 1 || r.Limit <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.Limit {
		return math.MaxInt
	}
	return (r.Page - 1) * r.Limit
}

type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	Pages      int64 `json:"pages"`
	HasMore    bool  `json:"hasMore"`
}

func NewPage[T any](items []T, req Request, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := int64(0)
	if req.Limit > 0 {
		pages = (total + int64(req.Limit) - 1) / int64(req.Limit)
	}
	return Page[T]{
		Items:      items,
		TotalCount: total,
		PageNumber: req.Page,
		PageSize:   req.Limit,
		Pages:      pages,
		HasMore:    len(items) > 0 && int64(req.Skip()) < total-int64(len(items)),
	}
}

type Engine struct {
	Store records.Store
}

func (e *Engine) ListWishes(ctx context.Context, req Request) (Page[models.Wish], error) {
	if err := req.Validate(); err != nil {
		return Page[models.Wish]{}, err
	}
	total, err := e.Store.CountWishes(ctx)
	if err != nil {
		return Page[models.Wish]{}, err
	}
	if int64(req.Skip()) >= total {
		return NewPage[models.Wish](nil, req, total), nil
	}
	wishes, err := e.Store.ListWishes(ctx, req.Skip(), req.Limit)
	if err != nil {
		return Page[models.Wish]{}, err
	}
	return NewPage(wishes, req, total), nil
}

// ListPhotos returns every photo, newest first, optionally only those of one guest
func (e *Engine) ListPhotos(ctx context.Context, guestID string) ([]models.Photo, error) {
	photos, err := e.Store.ListPhotos(ctx, guestID)
	if err != nil {
		return nil, err
	}
	if photos == nil {
		photos = []models.Photo{}
	}
	return photos, nil
}
