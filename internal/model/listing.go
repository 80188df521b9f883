package model

import "time"

const (
	StatusLost  = "lost"
	StatusFound = "found"
)

// Listing is a lost or found pet post.
type Listing struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Status      string    `gorm:"type:varchar(16) COLLATE utf8mb4_bin;not null;index" json:"status"`
	PetName     string    `gorm:"size:128" json:"petName"`
	Species     string    `gorm:"type:varchar(64) COLLATE utf8mb4_bin;index" json:"species"`
	Sex         string    `gorm:"size:32" json:"sex"`
	Breed       string    `gorm:"size:128" json:"breed"`
	Location    string    `gorm:"size:255" json:"location"`
	Description string    `gorm:"type:text" json:"description"`
	Email       string    `gorm:"size:128" json:"email"`
	ImageURL    string    `gorm:"size:512" json:"imageUrl"`
	UserID      *string   `gorm:"size:36;index" json:"userId,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

// ListingQuery is a store-level filter. At most one field is set by the
// query engine; an empty query matches every listing.
type ListingQuery struct {
	Status          string
	Species         string
	SpeciesContains string
}
