package list

import (
	"backend/internal/domain"

	"gorm.io/gorm"
)

type Repository interface {
	Create(l *domain.List) error
	Update(l *domain.List) error
	Delete(id uint64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(l *domain.List) error {
	return r.db.Create(l).Error
}

func (r *repository) Update(l *domain.List) error {
	return r.db.Save(l).Error
}

// Delete removes the list and its cards, including each card's
// comments and checklists.
func (r *repository) Delete(id uint64) error {
	cardIDs := r.db.Model(&domain.Card{}).Select("id").Where("list_id = ?", id)
	if err := r.db.Where("card_id IN (?)", cardIDs).Delete(&domain.Comment{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("card_id IN (?)", cardIDs).Delete(&domain.Checklist{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("list_id = ?", id).Delete(&domain.Card{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&domain.List{}, id).Error
}
