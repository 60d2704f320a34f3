package models

import (
	"time"

	"github.com/google/uuid"
)

// PublicNote is a PDF note visible to everyone. The blob reference
// (PDFURL + PDFKey) is immutable after creation; only title, subject
// and description may change, and only by the uploader.
type PublicNote struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Subject     string    `json:"subject" gorm:"not null"`
	Description string    `json:"description"`
	PDFURL      string    `json:"pdfUrl" gorm:"not null"`
	PDFKey      string    `json:"pdfKey" gorm:"not null"` // object-store key
	UploaderID  uuid.UUID `json:"uploaderId" gorm:"type:uuid;index;not null"`
	UploadedBy  string    `json:"uploadedBy" gorm:"not null"` // denormalized username, display only
	UploadedAt  time.Time `json:"uploadedAt" gorm:"autoCreateTime"`
}
