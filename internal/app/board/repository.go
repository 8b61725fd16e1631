package board

import (
	"errors"

	"backend/internal/domain"

	"gorm.io/gorm"
)

type Repository interface {
	Create(b *domain.Board) error
	Update(b *domain.Board) error
	Delete(id uint64) error
	ListsByBoard(boardID uint64) ([]*domain.List, error)
	ActiveCardsByBoard(boardID uint64) ([]*domain.Card, error)
	WorkspaceByID(id uint64) (*domain.Workspace, error)
	SaveWorkspace(ws *domain.Workspace) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(b *domain.Board) error {
	return r.db.Create(b).Error
}

func (r *repository) Update(b *domain.Board) error {
	return r.db.Save(b).Error
}

// Delete cascades the board subtree: comments and checklists of its
// cards, then cards, lists and the board row itself.
func (r *repository) Delete(id uint64) error {
	cardIDs := r.db.Model(&domain.Card{}).Select("id").Where("board_id = ?", id)
	if err := r.db.Where("card_id IN (?)", cardIDs).Delete(&domain.Comment{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("card_id IN (?)", cardIDs).Delete(&domain.Checklist{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("board_id = ?", id).Delete(&domain.Card{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("board_id = ?", id).Delete(&domain.List{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&domain.Board{}, id).Error
}

func (r *repository) ListsByBoard(boardID uint64) ([]*domain.List, error) {
	var lists []*domain.List
	err := r.db.
		Where("board_id = ?", boardID).
		Order(`"order" ASC`).
		Find(&lists).Error
	return lists, err
}

func (r *repository) ActiveCardsByBoard(boardID uint64) ([]*domain.Card, error) {
	var cards []*domain.Card
	err := r.db.
		Where("board_id = ? AND archived = ?", boardID, false).
		Order(`"order" ASC`).
		Find(&cards).Error
	return cards, err
}

func (r *repository) WorkspaceByID(id uint64) (*domain.Workspace, error) {
	var ws domain.Workspace
	if err := r.db.First(&ws, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ws, nil
}

func (r *repository) SaveWorkspace(ws *domain.Workspace) error {
	return r.db.Save(ws).Error
}
