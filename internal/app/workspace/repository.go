package workspace

import (
	"strconv"

	"backend/internal/domain"

	"gorm.io/gorm"
)

type Repository interface {
	ListForUser(userID uint64) ([]*domain.Workspace, error)
	Create(ws *domain.Workspace) error
	Update(ws *domain.Workspace) error
	Delete(id uint64) error
	BoardsByWorkspace(id uint64) ([]*domain.Board, error)
	ArchivedCards(workspaceID uint64) ([]*domain.Card, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListForUser returns workspaces the user owns, is a member of, or can
// see implicitly through membership on one of their boards. RoleMap
// keys serialize as JSON object keys, so membership is a jsonb key
// lookup on the stringified user id.
func (r *repository) ListForUser(userID uint64) ([]*domain.Workspace, error) {
	key := strconv.FormatUint(userID, 10)
	var workspaces []*domain.Workspace
	err := r.db.Raw(`
        SELECT DISTINCT w.* FROM workspaces w
        LEFT JOIN boards b ON b.workspace_id = w.id
        WHERE w.owner_id = ? OR jsonb_exists(w.members, ?)
           OR b.owner_id = ? OR jsonb_exists(b.members, ?)
        ORDER BY w."order" ASC
    `, userID, key, userID, key).Scan(&workspaces).Error
	return workspaces, err
}

func (r *repository) Create(ws *domain.Workspace) error {
	return r.db.Create(ws).Error
}

func (r *repository) Update(ws *domain.Workspace) error {
	return r.db.Save(ws).Error
}

// Delete cascades through the whole subtree. Each delete is its own
// statement against the store; activities are kept as audit history.
func (r *repository) Delete(id uint64) error {
	cardIDs := r.db.Model(&domain.Card{}).Select("id").Where("workspace_id = ?", id)
	if err := r.db.Where("card_id IN (?)", cardIDs).Delete(&domain.Comment{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("card_id IN (?)", cardIDs).Delete(&domain.Checklist{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("workspace_id = ?", id).Delete(&domain.Card{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("workspace_id = ?", id).Delete(&domain.List{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("workspace_id = ?", id).Delete(&domain.Label{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("workspace_id = ?", id).Delete(&domain.Board{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&domain.Workspace{}, id).Error
}

func (r *repository) BoardsByWorkspace(id uint64) ([]*domain.Board, error) {
	var boards []*domain.Board
	err := r.db.Where("workspace_id = ?", id).Order(`"order" ASC`).Find(&boards).Error
	return boards, err
}

func (r *repository) ArchivedCards(workspaceID uint64) ([]*domain.Card, error) {
	var cards []*domain.Card
	err := r.db.
		Where("workspace_id = ? AND archived = ?", workspaceID, true).
		Order("archived_at DESC").
		Find(&cards).Error
	return cards, err
}
