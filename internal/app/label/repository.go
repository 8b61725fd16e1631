package label

import (
	"errors"
	"fmt"

	"backend/internal/domain"

	"gorm.io/gorm"
)

type Repository interface {
	ByID(id uint64) (*domain.Label, error)
	ByWorkspace(workspaceID uint64) ([]*domain.Label, error)
	Create(l *domain.Label) error
	Update(l *domain.Label) error
	Delete(id uint64) error
	CardsWithLabel(labelID uint64) ([]*domain.Card, error)
	SaveCard(c *domain.Card) error
	BoardsByWorkspace(workspaceID uint64) ([]*domain.Board, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ByID(id uint64) (*domain.Label, error) {
	var l domain.Label
	if err := r.db.First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *repository) ByWorkspace(workspaceID uint64) ([]*domain.Label, error) {
	var labels []*domain.Label
	err := r.db.
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&labels).Error
	return labels, err
}

func (r *repository) Create(l *domain.Label) error {
	return r.db.Create(l).Error
}

func (r *repository) Update(l *domain.Label) error {
	return r.db.Save(l).Error
}

func (r *repository) Delete(id uint64) error {
	return r.db.Delete(&domain.Label{}, id).Error
}

// CardsWithLabel finds cards whose label_ids jsonb array contains the
// label, archived ones included; they all need the reference pulled.
func (r *repository) CardsWithLabel(labelID uint64) ([]*domain.Card, error) {
	var cards []*domain.Card
	err := r.db.
		Where("label_ids @> ?::jsonb", fmt.Sprintf("[%d]", labelID)).
		Find(&cards).Error
	return cards, err
}

func (r *repository) SaveCard(c *domain.Card) error {
	return r.db.Save(c).Error
}

func (r *repository) BoardsByWorkspace(workspaceID uint64) ([]*domain.Board, error) {
	var boards []*domain.Board
	err := r.db.Where("workspace_id = ?", workspaceID).Find(&boards).Error
	return boards, err
}
