package model

import "time"

type PetImage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	ObjectKey string    `gorm:"size:255;not null;uniqueIndex" json:"-"`
	ImageURL  string    `gorm:"size:512;not null" json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
