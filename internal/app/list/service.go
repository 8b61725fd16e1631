package list

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
	CreateList(ctx context.Context, userID, boardID uint64, req CreateListRequest) (*domain.List, error)
	UpdateList(ctx context.Context, userID, id uint64, req UpdateListRequest) (*domain.List, error)
	DeleteList(ctx context.Context, userID, id uint64) error
	ReorderCards(ctx context.Context, userID, id uint64, cardIDs []uint64) error
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

func (s *service) CreateList(ctx context.Context, userID, boardID uint64, req CreateListRequest) (*domain.List, error) {
	grant, err := s.resolver.Board(userID, boardID, domain.ActionWrite)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.Validation("list title is required")
	}
	b := grant.Board

	order, err := s.orders.NextListOrder(boardID)
	if err != nil {
		return nil, fmt.Errorf("next list order: %w", err)
	}

	// The denormalized chain comes from the board, keeping
	// list.WorkspaceID equal to the board's workspace.
	l := &domain.List{
		OwnerID:     userID,
		WorkspaceID: b.WorkspaceID,
		BoardID:     b.ID,
		Title:       title,
		Order:       order,
	}
	if err := s.repo.Create(l); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: b.WorkspaceID,
		BoardID:     &b.ID,
		EntityType:  "list",
		EntityID:    &l.ID,
		Action:      "create",
		Message:     fmt.Sprintf("created list %q", l.Title),
	})
	s.redisP.InvalidateBoard(ctx, b.ID)
	s.eventBus.Publish("list_created", b.ID, map[string]any{
		"board_id": b.ID,
		"list_id":  l.ID,
	})
	return l, nil
}

func (s *service) UpdateList(ctx context.Context, userID, id uint64, req UpdateListRequest) (*domain.List, error) {
	grant, err := s.resolver.List(userID, id, domain.ActionWrite)
	if err != nil {
		return nil, err
	}
	l := grant.List

	before := map[string]any{"title": l.Title}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.Validation("list title cannot be empty")
		}
		l.Title = title
	}

	if err := s.repo.Update(l); err != nil {
		return nil, fmt.Errorf("update list %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: l.WorkspaceID,
		BoardID:     &l.BoardID,
		EntityType:  "list",
		EntityID:    &l.ID,
		Action:      "update",
		Message:     fmt.Sprintf("updated list %q", l.Title),
		Meta: map[string]any{
			"before": before,
			"after":  map[string]any{"title": l.Title},
		},
	})
	s.redisP.InvalidateBoard(ctx, l.BoardID)
	s.eventBus.Publish("list_updated", l.BoardID, map[string]any{
		"board_id": l.BoardID,
		"list_id":  l.ID,
	})
	return l, nil
}

func (s *service) DeleteList(ctx context.Context, userID, id uint64) error {
	grant, err := s.resolver.List(userID, id, domain.ActionWrite)
	if err != nil {
		return err
	}
	l := grant.List

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("delete list %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: l.WorkspaceID,
		BoardID:     &l.BoardID,
		EntityType:  "list",
		EntityID:    &l.ID,
		Action:      "delete",
		Message:     fmt.Sprintf("deleted list %q", l.Title),
	})
	s.redisP.InvalidateBoard(ctx, l.BoardID)
	s.eventBus.Publish("list_deleted", l.BoardID, map[string]any{
		"board_id": l.BoardID,
		"list_id":  l.ID,
	})
	return nil
}

func (s *service) ReorderCards(ctx context.Context, userID, id uint64, cardIDs []uint64) error {
	grant, err := s.resolver.List(userID, id, domain.ActionWrite)
	if err != nil {
		return err
	}
	l := grant.List

	if err := s.orders.ReorderCards(id, cardIDs); err != nil {
		return err
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: l.WorkspaceID,
		BoardID:     &l.BoardID,
		EntityType:  "card",
		Action:      "reorder",
		Message:     fmt.Sprintf("reordered cards in list %q", l.Title),
		Meta:        map[string]any{"list_id": l.ID, "card_ids": cardIDs},
	})
	s.redisP.InvalidateBoard(ctx, l.BoardID)
	s.eventBus.Publish("card_reordered", l.BoardID, map[string]any{
		"board_id": l.BoardID,
		"list_id":  l.ID,
		"card_ids": cardIDs,
	})
	return nil
}
