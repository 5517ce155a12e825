package models

import "time"

const (
	MaxWishNameLength    = 50
	MaxWishMessageLength = 500
)

// Wish is a guestbook message
type Wish struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" bson:"name" json:"name"`
	Message   string    `gorm:"type:text;not null" bson:"message" json:"message"`
	GuestID   string    `gorm:"type:varchar(100)" bson:"guestId,omitempty" json:"guestId,omitempty"`
	CreatedAt time.Time `gorm:"index:wish_created" bson:"createdAt" json:"createdAt"`
}

func NewWish(name, message, guestID string, now time.Time) Wish {
	return Wish{
		ID:        NewID(),
		Name:      name,
		Message:   message,
		GuestID:   guestID,
		CreatedAt: now.UTC(),
	}
}
