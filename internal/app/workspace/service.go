package workspace

import (
	"context"
	"fmt"
	"strings"

	"backend/internal/app/access"
	"backend/internal/app/activity"
	"backend/internal/app/ordering"
	"backend/internal/domain"
	"backend/internal/providers/redis"
	"backend/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	ListWorkspaces(userID uint64) ([]*domain.Workspace, error)
	CreateWorkspace(userID uint64, req CreateWorkspaceRequest) (*domain.Workspace, error)
	GetWorkspace(userID, id uint64) (*domain.Workspace, error)
	UpdateWorkspace(userID, id uint64, req UpdateWorkspaceRequest) (*domain.Workspace, error)
	DeleteWorkspace(ctx context.Context, userID, id uint64) error
	UpsertMember(userID, id uint64, req UpsertMemberRequest) (*domain.Workspace, error)
	RemoveMember(userID, id, memberID uint64) (*domain.Workspace, error)
	ListArchivedCards(userID, id uint64) ([]*domain.Card, error)
}

type service struct {
	repo     Repository
	resolver *access.Resolver
	orders   ordering.Engine
	audit    *activity.Logger
	eventBus *utils.EventBus
	redisP   *redis.RedisProvider
	logger   *zap.SugaredLogger
}

func NewService(
	repo Repository,
	resolver *access.Resolver,
	orders ordering.Engine,
	audit *activity.Logger,
	eventBus *utils.EventBus,
	redisP *redis.RedisProvider,
	logger *zap.Logger,
) Service {
	return &service{
		repo:     repo,
		resolver: resolver,
		orders:   orders,
		audit:    audit,
		eventBus: eventBus,
		redisP:   redisP,
		logger:   logger.Sugar(),
	}
}

func (s *service) ListWorkspaces(userID uint64) ([]*domain.Workspace, error) {
	return s.repo.ListForUser(userID)
}

func (s *service) CreateWorkspace(userID uint64, req CreateWorkspaceRequest) (*domain.Workspace, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.Validation("workspace name is required")
	}

	order, err := s.orders.NextWorkspaceOrder(userID)
	if err != nil {
		return nil, fmt.Errorf("next workspace order: %w", err)
	}

	ws := &domain.Workspace{
		OwnerID:     userID,
		Name:        name,
		Description: req.Description,
		Order:       order,
		Members:     domain.RoleMap{userID: domain.RoleOwner},
	}
	if err := s.repo.Create(ws); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: ws.ID,
		EntityType:  "workspace",
		EntityID:    &ws.ID,
		Action:      "create",
		Message:     fmt.Sprintf("created workspace %q", ws.Name),
	})
	return ws, nil
}

func (s *service) GetWorkspace(userID, id uint64) (*domain.Workspace, error) {
	grant, err := s.resolver.Workspace(userID, id, domain.ActionRead)
	if err != nil {
		return nil, err
	}
	return grant.Workspace, nil
}

func (s *service) UpdateWorkspace(userID, id uint64, req UpdateWorkspaceRequest) (*domain.Workspace, error) {
	grant, err := s.resolver.Workspace(userID, id, domain.ActionWrite)
	if err != nil {
		return nil, err
	}
	ws := grant.Workspace

	before := map[string]any{"name": ws.Name, "description": ws.Description}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.Validation("workspace name cannot be empty")
		}
		ws.Name = name
	}
	if req.Description != nil {
		ws.Description = *req.Description
	}

	if err := s.repo.Update(ws); err != nil {
		return nil, fmt.Errorf("update workspace %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: ws.ID,
		EntityType:  "workspace",
		EntityID:    &ws.ID,
		Action:      "update",
		Message:     fmt.Sprintf("updated workspace %q", ws.Name),
		Meta: map[string]any{
			"before": before,
			"after":  map[string]any{"name": ws.Name, "description": ws.Description},
		},
	})
	s.publishToBoards(ws.ID, "workspace_updated", map[string]any{"workspace_id": ws.ID})
	return ws, nil
}

func (s *service) DeleteWorkspace(ctx context.Context, userID, id uint64) error {
	grant, err := s.resolver.Workspace(userID, id, domain.ActionManage)
	if err != nil {
		return err
	}
	ws := grant.Workspace

	boards, err := s.repo.BoardsByWorkspace(id)
	if err != nil {
		return fmt.Errorf("load boards for cascade: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("delete workspace %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: id,
		EntityType:  "workspace",
		EntityID:    &id,
		Action:      "delete",
		Message:     fmt.Sprintf("deleted workspace %q", ws.Name),
	})
	for _, b := range boards {
		s.redisP.InvalidateBoard(ctx, b.ID)
		s.eventBus.Publish("workspace_deleted", b.ID, map[string]any{"board_id": b.ID, "workspace_id": id})
	}
	return nil
}

func (s *service) UpsertMember(userID, id uint64, req UpsertMemberRequest) (*domain.Workspace, error) {
	grant, err := s.resolver.Workspace(userID, id, domain.ActionManage)
	if err != nil {
		return nil, err
	}
	if !domain.ValidRole(req.Role) {
		return nil, domain.Validation(fmt.Sprintf("unknown role %q", req.Role))
	}
	ws := grant.Workspace

	ws.Members = ws.Members.Upsert(req.UserID, domain.Role(req.Role))
	if err := s.repo.Update(ws); err != nil {
		return nil, fmt.Errorf("upsert member on workspace %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: ws.ID,
		EntityType:  "workspace",
		EntityID:    &ws.ID,
		Action:      "member_upsert",
		Message:     fmt.Sprintf("set role of user %d to %s", req.UserID, req.Role),
		Meta:        map[string]any{"member_id": req.UserID, "role": req.Role},
	})
	s.publishToBoards(ws.ID, "workspace_member_changed", map[string]any{
		"workspace_id": ws.ID,
		"member_id":    req.UserID,
	})
	return ws, nil
}

func (s *service) RemoveMember(userID, id, memberID uint64) (*domain.Workspace, error) {
	grant, err := s.resolver.Workspace(userID, id, domain.ActionManage)
	if err != nil {
		return nil, err
	}
	ws := grant.Workspace
	if memberID == ws.OwnerID {
		return nil, domain.Validation("the workspace owner cannot be removed")
	}
	if _, ok := ws.Members.Get(memberID); !ok {
		return nil, domain.NotFound("member not found in workspace")
	}

	ws.Members = ws.Members.Remove(memberID)
	if err := s.repo.Update(ws); err != nil {
		return nil, fmt.Errorf("remove member from workspace %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: ws.ID,
		EntityType:  "workspace",
		EntityID:    &ws.ID,
		Action:      "member_remove",
		Message:     fmt.Sprintf("removed user %d", memberID),
		Meta:        map[string]any{"member_id": memberID},
	})
	s.publishToBoards(ws.ID, "workspace_member_changed", map[string]any{
		"workspace_id": ws.ID,
		"member_id":    memberID,
	})
	return ws, nil
}

func (s *service) ListArchivedCards(userID, id uint64) ([]*domain.Card, error) {
	if _, err := s.resolver.Workspace(userID, id, domain.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.ArchivedCards(id)
}

// publishToBoards fans a workspace-level change out to the room of
// every board under it, since boards with no member override inherit
// the workspace state.
func (s *service) publishToBoards(workspaceID uint64, eventType string, data map[string]any) {
	boards, err := s.repo.BoardsByWorkspace(workspaceID)
	if err != nil {
		s.logger.Warnw("Failed to load boards for event fan-out",
			"workspace_id", workspaceID,
			"event", eventType,
			"error", err,
		)
		return
	}
	for _, b := range boards {
		s.eventBus.Publish(eventType, b.ID, data)
	}
}
