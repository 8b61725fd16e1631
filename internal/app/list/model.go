package list

type CreateListRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateListRequest struct {
	Title *string `json:"title,omitempty"`
}

type ReorderCardsRequest struct {
	CardIDs []uint64 `json:"card_ids" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
