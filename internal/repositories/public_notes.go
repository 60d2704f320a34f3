package repositories

import (
	"context"
	"errors"

	"github.com/anshul-dev/notesvault/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ PublicNoteStore = (*GormPublicNoteStore)(nil)

type GormPublicNoteStore struct {
	db *gorm.DB
}

func NewGormPublicNoteStore(db *gorm.DB) *GormPublicNoteStore {
	return &GormPublicNoteStore{db: db}
}

func (s *GormPublicNoteStore) Create(ctx context.Context, note *models.PublicNote) error {
	return s.db.WithContext(ctx).Create(note).Error
}

func (s *GormPublicNoteStore) ListAll(ctx context.Context) ([]models.PublicNote, error) {
	var notes []models.PublicNote
	err := s.db.WithContext(ctx).Order("uploaded_at DESC").Find(&notes).Error
	return notes, err
}

func (s *GormPublicNoteStore) ListByUploader(ctx context.Context, uploaderID uuid.UUID) ([]models.PublicNote, error) {
	var notes []models.PublicNote
	err := s.db.WithContext(ctx).
		Where("uploader_id = ?", uploaderID).
		Order("uploaded_at DESC").
		Find(&notes).Error
	return notes, err
}

func (s *GormPublicNoteStore) FindByID(ctx context.Context, id uuid.UUID) (*models.PublicNote, error) {
	var note models.PublicNote
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateMeta writes the mutable columns only; the blob reference is
// immutable after create.
func (s *GormPublicNoteStore) UpdateMeta(ctx context.Context, note *models.PublicNote) error {
	result := s.db.WithContext(ctx).
		Model(&models.PublicNote{}).
		Where("id = ?", note.ID).
		Updates(map[string]interface{}{
			"title":       note.Title,
			"subject":     note.Subject,
			"description": note.Description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormPublicNoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PublicNote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
