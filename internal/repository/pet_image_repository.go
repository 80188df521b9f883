package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"petspotter/internal/model"
)

type PetImageRepository struct {
	db *gorm.DB
}

func NewPetImageRepository(db *gorm.DB) *PetImageRepository {
	return &PetImageRepository{db: db}
}

func (r *PetImageRepository) Create(ctx context.Context, image *model.PetImage) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return translateError(err, "pet_images", "create pet image")
	}
	return nil
}

func (r *PetImageRepository) GetByID(ctx context.Context, id string) (*model.PetImage, error) {
	var image model.PetImage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query pet image failed: %w", err)
	}
	return &image, nil
}
