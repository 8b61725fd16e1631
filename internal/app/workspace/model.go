package workspace

import "backend/internal/domain"

type CreateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateWorkspaceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type UpsertMemberRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=owner editor viewer"`
}

type WorkspaceListResponse struct {
	Workspaces []*domain.Workspace `json:"workspaces"`
}

type ArchivedCardsResponse struct {
	Cards []*domain.Card `json:"cards"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
