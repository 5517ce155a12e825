package models

import (
	"time"

	"github.com/google/uuid"
)

// Photo is a guest submitted image. The binary lives in the object store,
// URL and ObjectID point at it and are never changed after creation.
type Photo struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	URL          string    `gorm:"type:varchar(2000);not null" bson:"url" json:"url"`
	ObjectID     string    `gorm:"type:varchar(300)" bson:"objectId,omitempty" json:"objectId,omitempty"` // needed to delete the object
	OriginalName string    `gorm:"type:varchar(300)" bson:"originalName,omitempty" json:"originalName,omitempty"`
	GuestID      string    `gorm:"type:varchar(100);index:photo_guest_created,priority:1" bson:"guestId,omitempty" json:"guestId,omitempty"`
	CreatedAt    time.Time `gorm:"index:photo_guest_created,priority:2;index:photo_created" bson:"createdAt" json:"createdAt"`
}

// NewID returns a time ordered identifier. Records created later always
// compare greater, which makes it usable as a tie breaker for CreatedAt.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func NewPhoto(url, objectID, originalName, guestID string, now time.Time) Photo {
	return Photo{
		ID:           NewID(),
		URL:          url,
		ObjectID:     objectID,
		OriginalName: originalName,
		GuestID:      guestID,
		CreatedAt:    now.UTC(),
	}
}
