package activity

import (
	"backend/internal/domain"

	"gorm.io/gorm"
)

type Repository interface {
	Create(a *domain.Activity) error
	ListByBoard(boardID uint64, limit int) ([]*domain.Activity, error)
	ListByWorkspace(workspaceID uint64, limit int) ([]*domain.Activity, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(a *domain.Activity) error {
	return r.db.Create(a).Error
}

func (r *repository) ListByBoard(boardID uint64, limit int) ([]*domain.Activity, error) {
	var activities []*domain.Activity
	err := r.db.
		Where("board_id = ?", boardID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

func (r *repository) ListByWorkspace(workspaceID uint64, limit int) ([]*domain.Activity, error) {
	var activities []*domain.Activity
	err := r.db.
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}
