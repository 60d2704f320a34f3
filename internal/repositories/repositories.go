// Package repositories holds the storage layer: GORM-backed stores for the
// three record kinds and an S3-backed blob store for PDF payloads. Handlers
// depend on the interfaces so tests can swap in in-memory fakes.
package repositories

import (
	"context"
	"errors"
	"io"

	"github.com/anshul-dev/notesvault/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByUsernameOrEmail is the single existence query behind the signup
	// duplicate pre-check.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
}

type PublicNoteStore interface {
	Create(ctx context.Context, note *models.PublicNote) error
	ListAll(ctx context.Context) ([]models.PublicNote, error)
	ListByUploader(ctx context.Context, uploaderID uuid.UUID) ([]models.PublicNote, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PublicNote, error)
	UpdateMeta(ctx context.Context, note *models.PublicNote) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PrivateNoteStore scopes every read and mutation by (id, owner) in one
// compound match; a foreign note id comes back ErrNotFound.
type PrivateNoteStore interface {
	Create(ctx context.Context, note *models.PrivateNote) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.PrivateNote, error)
	FindByOwnerAndID(ctx context.Context, ownerID, id uuid.UUID) (*models.PrivateNote, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, title, content string) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// BlobStore is the object-store boundary: Put returns the durable URL and
// the store key for the stored bytes.
type BlobStore interface {
	Put(ctx context.Context, contentType string, body io.Reader, size int64) (url, key string, err error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
