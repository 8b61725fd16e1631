package checklist

import (
	"errors"

	"backend/internal/domain"

	"gorm.io/gorm"
)

type Repository interface {
	ByID(id uint64) (*domain.Checklist, error)
	ByCard(cardID uint64) ([]*domain.Checklist, error)
	Create(cl *domain.Checklist) error
	Update(cl *domain.Checklist) error
	Delete(id uint64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ByID(id uint64) (*domain.Checklist, error) {
	var cl domain.Checklist
	if err := r.db.First(&cl, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cl, nil
}

func (r *repository) ByCard(cardID uint64) ([]*domain.Checklist, error) {
	var checklists []*domain.Checklist
	err := r.db.
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&checklists).Error
	return checklists, err
}

func (r *repository) Create(cl *domain.Checklist) error {
	return r.db.Create(cl).Error
}

func (r *repository) Update(cl *domain.Checklist) error {
	return r.db.Save(cl).Error
}

func (r *repository) Delete(id uint64) error {
	return r.db.Delete(&domain.Checklist{}, id).Error
}
