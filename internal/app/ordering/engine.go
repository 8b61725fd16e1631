package ordering

import (
	"fmt"

	"backend/internal/domain"

	"gorm.io/gorm"
)

// Engine maintains the dense zero-based sibling order: append assigns
// max+1 within the parent scope, reorder rewrites every position from a
// caller-supplied permutation.
type Engine interface {
	NextWorkspaceOrder(ownerID uint64) (int, error)
	NextBoardOrder(workspaceID uint64) (int, error)
	NextListOrder(boardID uint64) (int, error)
	NextCardOrder(listID uint64) (int, error)
	ReorderLists(boardID uint64, ids []uint64) error
	ReorderCards(listID uint64, ids []uint64) error
}

type engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) Engine {
	return &engine{db: db}
}

func (e *engine) NextWorkspaceOrder(ownerID uint64) (int, error) {
	return e.next(&domain.Workspace{}, "owner_id = ?", ownerID)
}

func (e *engine) NextBoardOrder(workspaceID uint64) (int, error) {
	return e.next(&domain.Board{}, "workspace_id = ?", workspaceID)
}

func (e *engine) NextListOrder(boardID uint64) (int, error) {
	return e.next(&domain.List{}, "board_id = ?", boardID)
}

// NextCardOrder appends among active cards only; archived cards keep
// their old position for restore but no longer occupy a slot.
func (e *engine) NextCardOrder(listID uint64) (int, error) {
	return e.next(&domain.Card{}, "list_id = ? AND archived = ?", listID, false)
}

func (e *engine) next(model any, query string, args ...any) (int, error) {
	var orders []int
	err := e.db.Model(model).
		Where(query, args...).
		Pluck(`"order"`, &orders).Error
	if err != nil {
		return 0, err
	}
	return nextPosition(orders), nil
}

// nextPosition is the append slot: one past the highest occupied order,
// 0 for an empty sibling set. A sparse order (after a partial reorder
// or archiving) still appends past the highest survivor, so appends
// never collide with an existing position.
func nextPosition(orders []int) int {
	next := 0
	for _, o := range orders {
		if o >= next {
			next = o + 1
		}
	}
	return next
}

func (e *engine) ReorderLists(boardID uint64, ids []uint64) error {
	var current []uint64
	err := e.db.Model(&domain.List{}).
		Where("board_id = ?", boardID).
		Pluck("id", &current).Error
	if err != nil {
		return err
	}
	if err := ValidatePermutation(current, ids); err != nil {
		return err
	}
	return e.rewrite(&domain.List{}, ids)
}

func (e *engine) ReorderCards(listID uint64, ids []uint64) error {
	var current []uint64
	err := e.db.Model(&domain.Card{}).
		Where("list_id = ? AND archived = ?", listID, false).
		Pluck("id", &current).Error
	if err != nil {
		return err
	}
	if err := ValidatePermutation(current, ids); err != nil {
		return err
	}
	return e.rewrite(&domain.Card{}, ids)
}

// rewrite issues one single-row update per position. There is no
// wrapping transaction: the store gives atomic single-row writes only,
// and a partial failure leaves a non-dense order until the next full
// reorder rewrites it.
func (e *engine) rewrite(model any, ids []uint64) error {
	for _, p := range positions(ids) {
		err := e.db.Model(model).
			Where("id = ?", p.id).
			Update("order", p.order).Error
		if err != nil {
			return fmt.Errorf("write order %d for id %d: %w", p.order, p.id, err)
		}
	}
	return nil
}

type position struct {
	id    uint64
	order int
}

// positions maps the supplied permutation to dense zero-based orders.
// The assignment depends only on the sequence, so replaying the same
// reorder repairs whatever a partially applied one left behind.
func positions(ids []uint64) []position {
	out := make([]position, len(ids))
	for idx, id := range ids {
		out[idx] = position{id: id, order: idx}
	}
	return out
}

// ValidatePermutation rejects any supplied id sequence that is not
// exactly the current sibling set: missing ids, unknown ids, or
// duplicates all fail before any write happens.
func ValidatePermutation(current, supplied []uint64) error {
	if len(supplied) != len(current) {
		return domain.Validation(fmt.Sprintf("reorder expects %d ids, got %d", len(current), len(supplied)))
	}
	seen := make(map[uint64]bool, len(supplied))
	for _, id := range supplied {
		if seen[id] {
			return domain.Validation(fmt.Sprintf("duplicate id %d in reorder", id))
		}
		seen[id] = true
	}
	for _, id := range current {
		if !seen[id] {
			return domain.Validation(fmt.Sprintf("reorder is missing id %d", id))
		}
	}
	return nil
}
