package repositories

import (
	"context"
	"errors"

	"github.com/anshul-dev/notesvault/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ PrivateNoteStore = (*GormPrivateNoteStore)(nil)

type GormPrivateNoteStore struct {
	db *gorm.DB
}

func NewGormPrivateNoteStore(db *gorm.DB) *GormPrivateNoteStore {
	return &GormPrivateNoteStore{db: db}
}

func (s *GormPrivateNoteStore) Create(ctx context.Context, note *models.PrivateNote) error {
	return s.db.WithContext(ctx).Create(note).Error
}

func (s *GormPrivateNoteStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.PrivateNote, error) {
	var notes []models.PrivateNote
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (s *GormPrivateNoteStore) FindByOwnerAndID(ctx context.Context, ownerID, id uuid.UUID) (*models.PrivateNote, error) {
	var note models.PrivateNote
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// A foreign owner's note must look exactly like a missing one.
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *GormPrivateNoteStore) Update(ctx context.Context, ownerID, id uuid.UUID, title, content string) error {
	result := s.db.WithContext(ctx).
		Model(&models.PrivateNote{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(map[string]interface{}{"title": title, "content": content})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormPrivateNoteStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.PrivateNote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
