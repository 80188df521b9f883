package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"petspotter/internal/model"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, listing *model.Listing) error {
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		return translateError(err, "listings", "create listing")
	}
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	var listing model.Listing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query listing failed: %w", err)
	}
	return &listing, nil
}

func (r *ListingRepository) List(ctx context.Context, query model.ListingQuery) ([]model.Listing, error) {
	tx := r.db.WithContext(ctx).Model(&model.Listing{})
	switch {
	case query.Status != "":
		tx = tx.Where("status = ?", query.Status)
	case query.Species != "":
		tx = tx.Where("species = ?", query.Species)
	case query.SpeciesContains != "":
		tx = tx.Where("LOWER(species) LIKE ?", "%"+escapeLike(strings.ToLower(query.SpeciesContains))+"%")
	}

	listings := make([]model.Listing, 0)
	if err := tx.Order("created_at ASC").Order("id ASC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("list listings failed: %w", err)
	}
	return listings, nil
}

// Delete removes the listing and returns it, or returns nil when no row
// with id exists.
func (r *ListingRepository) Delete(ctx context.Context, id string) (*model.Listing, error) {
	var deleted *model.Listing
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing model.Listing
		if err := tx.Where("id = ?", id).First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Listing{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			deleted = &listing
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete listing failed: %w", err)
	}
	return deleted, nil
}

func (r *ListingRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Listing{}).Error; err != nil {
		return fmt.Errorf("delete all listings failed: %w", err)
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
