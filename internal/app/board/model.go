package board

import "backend/internal/domain"

type CreateBoardRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateBoardRequest struct {
	Name *string `json:"name,omitempty"`
}

type UpsertMemberRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=owner editor viewer"`
}

type ReorderListsRequest struct {
	ListIDs []uint64 `json:"list_ids" binding:"required"`
}

// ListWithCards is one column of the snapshot: the list plus its active
// cards in dense order.
type ListWithCards struct {
	domain.List
	Cards []*domain.Card `json:"cards"`
}

// Snapshot is the full board view served on GET and cached in redis.
type Snapshot struct {
	Board *domain.Board    `json:"board"`
	Lists []*ListWithCards `json:"lists"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
