package board

import (
	"context"
	"encoding/json"
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
	CreateBoard(userID, workspaceID uint64, req CreateBoardRequest) (*domain.Board, error)
	GetBoard(ctx context.Context, userID, id uint64) (*Snapshot, error)
	UpdateBoard(ctx context.Context, userID, id uint64, req UpdateBoardRequest) (*domain.Board, error)
	DeleteBoard(ctx context.Context, userID, id uint64) error
	UpsertMember(ctx context.Context, userID, id uint64, req UpsertMemberRequest) (*domain.Board, error)
	RemoveMember(ctx context.Context, userID, id, memberID uint64) (*domain.Board, error)
	ReorderLists(ctx context.Context, userID, id uint64, listIDs []uint64) error
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

func (s *service) CreateBoard(userID, workspaceID uint64, req CreateBoardRequest) (*domain.Board, error) {
	if _, err := s.resolver.Workspace(userID, workspaceID, domain.ActionWrite); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.Validation("board name is required")
	}

	order, err := s.orders.NextBoardOrder(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("next board order: %w", err)
	}

	// An empty member map makes the board inherit the workspace
	// membership transparently.
	b := &domain.Board{
		OwnerID:     userID,
		WorkspaceID: workspaceID,
		Name:        name,
		Order:       order,
	}
	if err := s.repo.Create(b); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: workspaceID,
		BoardID:     &b.ID,
		EntityType:  "board",
		EntityID:    &b.ID,
		Action:      "create",
		Message:     fmt.Sprintf("created board %q", b.Name),
	})
	s.eventBus.Publish("board_created", b.ID, map[string]any{"board_id": b.ID})
	return b, nil
}

// GetBoard serves the cached snapshot when present. The snapshot is the
// same for every authorized viewer, so the cache is keyed by board only.
func (s *service) GetBoard(ctx context.Context, userID, id uint64) (*Snapshot, error) {
	grant, err := s.resolver.Board(userID, id, domain.ActionRead)
	if err != nil {
		return nil, err
	}

	cacheKey := redis.BoardSnapshotKey(id)
	if cached, err := s.redisP.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
		var snap Snapshot
		if json.Unmarshal([]byte(cached), &snap) == nil {
			return &snap, nil
		}
	}

	snap, err := s.buildSnapshot(grant.Board)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(snap); err == nil {
		if err := s.redisP.SetWithDefaultTTL(ctx, cacheKey, payload).Err(); err != nil {
			s.logger.Warnw("Failed to cache board snapshot", "board_id", id, "error", err)
		}
	}
	return snap, nil
}

func (s *service) buildSnapshot(b *domain.Board) (*Snapshot, error) {
	lists, err := s.repo.ListsByBoard(b.ID)
	if err != nil {
		return nil, fmt.Errorf("load lists of board %d: %w", b.ID, err)
	}
	cards, err := s.repo.ActiveCardsByBoard(b.ID)
	if err != nil {
		return nil, fmt.Errorf("load cards of board %d: %w", b.ID, err)
	}

	byList := make(map[uint64][]*domain.Card, len(lists))
	for _, card := range cards {
		byList[card.ListID] = append(byList[card.ListID], card)
	}

	snap := &Snapshot{Board: b, Lists: make([]*ListWithCards, 0, len(lists))}
	for _, l := range lists {
		cardsOfList := byList[l.ID]
		if cardsOfList == nil {
			cardsOfList = []*domain.Card{}
		}
		snap.Lists = append(snap.Lists, &ListWithCards{List: *l, Cards: cardsOfList})
	}
	return snap, nil
}

func (s *service) UpdateBoard(ctx context.Context, userID, id uint64, req UpdateBoardRequest) (*domain.Board, error) {
	grant, err := s.resolver.Board(userID, id, domain.ActionWrite)
	if err != nil {
		return nil, err
	}
	b := grant.Board

	before := map[string]any{"name": b.Name}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.Validation("board name cannot be empty")
		}
		b.Name = name
	}

	if err := s.repo.Update(b); err != nil {
		return nil, fmt.Errorf("update board %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: b.WorkspaceID,
		BoardID:     &b.ID,
		EntityType:  "board",
		EntityID:    &b.ID,
		Action:      "update",
		Message:     fmt.Sprintf("updated board %q", b.Name),
		Meta: map[string]any{
			"before": before,
			"after":  map[string]any{"name": b.Name},
		},
	})
	s.redisP.InvalidateBoard(ctx, b.ID)
	s.eventBus.Publish("board_updated", b.ID, map[string]any{"board_id": b.ID})
	return b, nil
}

func (s *service) DeleteBoard(ctx context.Context, userID, id uint64) error {
	grant, err := s.resolver.Board(userID, id, domain.ActionManage)
	if err != nil {
		return err
	}
	b := grant.Board

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("delete board %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: b.WorkspaceID,
		BoardID:     &b.ID,
		EntityType:  "board",
		EntityID:    &b.ID,
		Action:      "delete",
		Message:     fmt.Sprintf("deleted board %q", b.Name),
	})
	s.redisP.InvalidateBoard(ctx, id)
	s.eventBus.Publish("board_deleted", id, map[string]any{"board_id": id})
	return nil
}

// UpsertMember sets the member's role on the board. A user granted
// board access who is unknown to the workspace is added there as a
// viewer, so they can always resolve the containing workspace.
func (s *service) UpsertMember(ctx context.Context, userID, id uint64, req UpsertMemberRequest) (*domain.Board, error) {
	grant, err := s.resolver.Board(userID, id, domain.ActionManage)
	if err != nil {
		return nil, err
	}
	if !domain.ValidRole(req.Role) {
		return nil, domain.Validation(fmt.Sprintf("unknown role %q", req.Role))
	}
	b := grant.Board

	b.Members = b.Members.Upsert(req.UserID, domain.Role(req.Role))
	if err := s.repo.Update(b); err != nil {
		return nil, fmt.Errorf("upsert member on board %d: %w", id, err)
	}

	ws, err := s.repo.WorkspaceByID(b.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("load workspace %d: %w", b.WorkspaceID, err)
	}
	if ws != nil && ws.OwnerID != req.UserID {
		if _, ok := ws.Members.Get(req.UserID); !ok {
			ws.Members = ws.Members.Upsert(req.UserID, domain.RoleViewer)
			if err := s.repo.SaveWorkspace(ws); err != nil {
				return nil, fmt.Errorf("propagate member to workspace %d: %w", ws.ID, err)
			}
		}
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: b.WorkspaceID,
		BoardID:     &b.ID,
		EntityType:  "board",
		EntityID:    &b.ID,
		Action:      "member_upsert",
		Message:     fmt.Sprintf("set role of user %d to %s", req.UserID, req.Role),
		Meta:        map[string]any{"member_id": req.UserID, "role": req.Role},
	})
	s.redisP.InvalidateBoard(ctx, b.ID)
	s.eventBus.Publish("board_member_changed", b.ID, map[string]any{
		"board_id":  b.ID,
		"member_id": req.UserID,
	})
	return b, nil
}

func (s *service) RemoveMember(ctx context.Context, userID, id, memberID uint64) (*domain.Board, error) {
	grant, err := s.resolver.Board(userID, id, domain.ActionManage)
	if err != nil {
		return nil, err
	}
	b := grant.Board
	if memberID == b.OwnerID {
		return nil, domain.Validation("the board owner cannot be removed")
	}
	if _, ok := b.Members.Get(memberID); !ok {
		return nil, domain.NotFound("member not found on board")
	}

	b.Members = b.Members.Remove(memberID)
	if err := s.repo.Update(b); err != nil {
		return nil, fmt.Errorf("remove member from board %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: b.WorkspaceID,
		BoardID:     &b.ID,
		EntityType:  "board",
		EntityID:    &b.ID,
		Action:      "member_remove",
		Message:     fmt.Sprintf("removed user %d", memberID),
		Meta:        map[string]any{"member_id": memberID},
	})
	s.redisP.InvalidateBoard(ctx, b.ID)
	s.eventBus.Publish("board_member_changed", b.ID, map[string]any{
		"board_id":  b.ID,
		"member_id": memberID,
	})
	return b, nil
}

func (s *service) ReorderLists(ctx context.Context, userID, id uint64, listIDs []uint64) error {
	grant, err := s.resolver.Board(userID, id, domain.ActionWrite)
	if err != nil {
		return err
	}
	b := grant.Board

	if err := s.orders.ReorderLists(id, listIDs); err != nil {
		return err
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: b.WorkspaceID,
		BoardID:     &b.ID,
		EntityType:  "list",
		Action:      "reorder",
		Message:     fmt.Sprintf("reordered lists on board %q", b.Name),
		Meta:        map[string]any{"list_ids": listIDs},
	})
	s.redisP.InvalidateBoard(ctx, id)
	s.eventBus.Publish("list_reordered", id, map[string]any{
		"board_id": id,
		"list_ids": listIDs,
	})
	return nil
}
