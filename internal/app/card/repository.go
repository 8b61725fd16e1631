package card

import (
	"backend/internal/domain"

	"gorm.io/gorm"
)

type Repository interface {
	Create(c *domain.Card) error
	Update(c *domain.Card) error
	Delete(id uint64) error
	CommentsByCard(cardID uint64) ([]*domain.Comment, error)
	ChecklistsByCard(cardID uint64) ([]*domain.Checklist, error)
	CountLabelsInWorkspace(workspaceID uint64, ids []uint64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(c *domain.Card) error {
	return r.db.Create(c).Error
}

func (r *repository) Update(c *domain.Card) error {
	return r.db.Save(c).Error
}

// Delete removes the card and sweeps its comments and checklists so a
// hard-deleted card leaves no orphaned history behind.
func (r *repository) Delete(id uint64) error {
	if err := r.db.Where("card_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("card_id = ?", id).Delete(&domain.Checklist{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&domain.Card{}, id).Error
}

func (r *repository) CommentsByCard(cardID uint64) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *repository) ChecklistsByCard(cardID uint64) ([]*domain.Checklist, error) {
	var checklists []*domain.Checklist
	err := r.db.
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&checklists).Error
	return checklists, err
}

func (r *repository) CountLabelsInWorkspace(workspaceID uint64, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&domain.Label{}).
		Where("workspace_id = ? AND id IN ?", workspaceID, ids).
		Count(&count).Error
	return count, err
}
