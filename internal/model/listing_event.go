package model

import "time"

const (
	ListingActionCreated = "created"
	ListingActionDeleted = "deleted"
)

type ListingEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ListingID  string    `gorm:"size:36;not null;index" json:"listing_id"`
	UserID     *string   `gorm:"size:36;index" json:"user_id,omitempty"`
	Action     string    `gorm:"size:16;not null" json:"action"`
	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`
}
