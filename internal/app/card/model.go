package card

import (
	"time"

	"backend/internal/domain"
)

type CreateCardRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	AssigneeID  *uint64            `json:"assignee_id,omitempty"`
	DueDate     *time.Time         `json:"due_date,omitempty"`
	LabelIDs    []uint64           `json:"label_ids,omitempty"`
	Attachment  *domain.Attachment `json:"attachment,omitempty"`
}

// UpdateCardRequest carries optional fields; a present list_id that
// differs from the card's current list is a move.
type UpdateCardRequest struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	ListID      *uint64            `json:"list_id,omitempty"`
	AssigneeID  *uint64            `json:"assignee_id,omitempty"`
	DueDate     *time.Time         `json:"due_date,omitempty"`
	LabelIDs    *[]uint64          `json:"label_ids,omitempty"`
	Attachment  *domain.Attachment `json:"attachment,omitempty"`
}

// Detail is the single-card view with its comments and checklists.
type Detail struct {
	Card       *domain.Card        `json:"card"`
	Comments   []*domain.Comment   `json:"comments"`
	Checklists []*domain.Checklist `json:"checklists"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
