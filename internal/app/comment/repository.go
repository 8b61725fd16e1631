package comment

import (
	"errors"

	"backend/internal/domain"

	"gorm.io/gorm"
)

type Repository interface {
	ByID(id uint64) (*domain.Comment, error)
	ByCard(cardID uint64) ([]*domain.Comment, error)
	Create(cm *domain.Comment) error
	Delete(id uint64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ByID(id uint64) (*domain.Comment, error) {
	var cm domain.Comment
	if err := r.db.First(&cm, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cm, nil
}

func (r *repository) ByCard(cardID uint64) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *repository) Create(cm *domain.Comment) error {
	return r.db.Create(cm).Error
}

func (r *repository) Delete(id uint64) error {
	return r.db.Delete(&domain.Comment{}, id).Error
}
