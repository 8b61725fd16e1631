package access

import (
	"errors"

	"backend/internal/domain"

	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewStore returns the gorm-backed snapshot loader used by the resolver.
func NewStore(db *gorm.DB) Store {
	return &repository{db: db}
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

func (r *repository) BoardByID(id uint64) (*domain.Board, error) {
	var b domain.Board
	if err := r.db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListByID(id uint64) (*domain.List, error) {
	var l domain.List
	if err := r.db.First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *repository) CardByID(id uint64) (*domain.Card, error) {
	var c domain.Card
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) BoardsByWorkspace(workspaceID uint64) ([]*domain.Board, error) {
	var boards []*domain.Board
	err := r.db.Where("workspace_id = ?", workspaceID).Find(&boards).Error
	return boards, err
}
