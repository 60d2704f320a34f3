package models

import (
	"time"

	"github.com/google/uuid"
)

// PrivateNote is a per-user text note. Every read, update and delete is
// scoped by (id, owner_id) in a single compound match, so another user's
// note id is indistinguishable from a missing one.
type PrivateNote struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	OwnerID   uuid.UUID `json:"ownerId" gorm:"type:uuid;index;not null"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
