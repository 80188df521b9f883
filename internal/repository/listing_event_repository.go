package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"petspotter/internal/model"
)

type ListingEventRepository struct {
	db *gorm.DB
}

func NewListingEventRepository(db *gorm.DB) *ListingEventRepository {
	return &ListingEventRepository{db: db}
}

func (r *ListingEventRepository) Create(ctx context.Context, event *model.ListingEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create listing event failed: %w", err)
	}
	return nil
}
