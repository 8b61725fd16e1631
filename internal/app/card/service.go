package card

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backend/internal/app/access"
	"backend/internal/app/activity"
	"backend/internal/app/ordering"
	"backend/internal/domain"
	"backend/internal/providers/redis"
	"backend/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	CreateCard(ctx context.Context, userID, listID uint64, req CreateCardRequest) (*domain.Card, error)
	GetCard(userID, id uint64) (*Detail, error)
	UpdateCard(ctx context.Context, userID, id uint64, req UpdateCardRequest) (*domain.Card, error)
	ArchiveCard(ctx context.Context, userID, id uint64) (*domain.Card, error)
	RestoreCard(ctx context.Context, userID, id uint64) (*domain.Card, error)
	PermanentDelete(ctx context.Context, userID, id uint64) error
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

func (s *service) CreateCard(ctx context.Context, userID, listID uint64, req CreateCardRequest) (*domain.Card, error) {
	grant, err := s.resolver.List(userID, listID, domain.ActionWrite)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.Validation("card title is required")
	}
	l := grant.List

	if err := s.checkLabels(l.WorkspaceID, req.LabelIDs); err != nil {
		return nil, err
	}

	order, err := s.orders.NextCardOrder(listID)
	if err != nil {
		return nil, fmt.Errorf("next card order: %w", err)
	}

	card := &domain.Card{
		OwnerID:     userID,
		WorkspaceID: l.WorkspaceID,
		BoardID:     l.BoardID,
		ListID:      l.ID,
		Title:       title,
		Description: req.Description,
		Attachment:  req.Attachment,
		Order:       order,
		AssigneeID:  req.AssigneeID,
		LabelIDs:    req.LabelIDs,
		DueDate:     req.DueDate,
	}
	if err := s.repo.Create(card); err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: card.WorkspaceID,
		BoardID:     &card.BoardID,
		EntityType:  "card",
		EntityID:    &card.ID,
		Action:      "create",
		Message:     fmt.Sprintf("created card %q in list %q", card.Title, l.Title),
	})
	s.redisP.InvalidateBoard(ctx, card.BoardID)
	s.eventBus.Publish("card_created", card.BoardID, map[string]any{
		"board_id": card.BoardID,
		"list_id":  card.ListID,
		"card_id":  card.ID,
	})
	return card, nil
}

func (s *service) GetCard(userID, id uint64) (*Detail, error) {
	grant, err := s.resolver.Card(userID, id, domain.ActionRead)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.CommentsByCard(id)
	if err != nil {
		return nil, fmt.Errorf("load comments of card %d: %w", id, err)
	}
	checklists, err := s.repo.ChecklistsByCard(id)
	if err != nil {
		return nil, fmt.Errorf("load checklists of card %d: %w", id, err)
	}
	return &Detail{Card: grant.Card, Comments: comments, Checklists: checklists}, nil
}

func (s *service) UpdateCard(ctx context.Context, userID, id uint64, req UpdateCardRequest) (*domain.Card, error) {
	grant, err := s.resolver.Card(userID, id, domain.ActionWrite)
	if err != nil {
		return nil, err
	}
	card := grant.Card
	if card.Archived {
		return nil, domain.Validation("archived cards cannot be updated")
	}

	moved := req.ListID != nil && *req.ListID != card.ListID
	before := map[string]any{
		"title":    card.Title,
		"list_id":  card.ListID,
		"board_id": card.BoardID,
	}
	fromBoardID := card.BoardID

	if moved {
		// Moving needs write access on the destination board as well;
		// the target chain is copied onto the card so the denormalized
		// ids stay consistent with the new list.
		target, err := s.resolver.List(userID, *req.ListID, domain.ActionWrite)
		if err != nil {
			return nil, err
		}
		if target.List.WorkspaceID != card.WorkspaceID {
			return nil, domain.Validation("cards cannot move across workspaces")
		}
		order, err := s.orders.NextCardOrder(target.List.ID)
		if err != nil {
			return nil, fmt.Errorf("next card order: %w", err)
		}
		card.ListID = target.List.ID
		card.BoardID = target.List.BoardID
		card.WorkspaceID = target.List.WorkspaceID
		card.Order = order
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.Validation("card title cannot be empty")
		}
		card.Title = title
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.AssigneeID != nil {
		card.AssigneeID = req.AssigneeID
	}
	if req.DueDate != nil {
		card.DueDate = req.DueDate
	}
	if req.Attachment != nil {
		card.Attachment = req.Attachment
	}
	if req.LabelIDs != nil {
		if err := s.checkLabels(card.WorkspaceID, *req.LabelIDs); err != nil {
			return nil, err
		}
		card.LabelIDs = *req.LabelIDs
	}

	if err := s.repo.Update(card); err != nil {
		return nil, fmt.Errorf("update card %d: %w", id, err)
	}

	action := "update"
	eventType := "card_updated"
	if moved {
		action = "move"
		eventType = "card_moved"
	}
	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: card.WorkspaceID,
		BoardID:     &card.BoardID,
		EntityType:  "card",
		EntityID:    &card.ID,
		Action:      action,
		Message:     fmt.Sprintf("%sd card %q", action, card.Title),
		Meta: map[string]any{
			"before": before,
			"after": map[string]any{
				"title":    card.Title,
				"list_id":  card.ListID,
				"board_id": card.BoardID,
			},
		},
	})
	s.redisP.InvalidateBoard(ctx, card.BoardID)
	if moved && fromBoardID != card.BoardID {
		s.redisP.InvalidateBoard(ctx, fromBoardID)
		s.eventBus.Publish(eventType, fromBoardID, map[string]any{
			"board_id": fromBoardID,
			"card_id":  card.ID,
			"list_id":  card.ListID,
		})
	}
	s.eventBus.Publish(eventType, card.BoardID, map[string]any{
		"board_id": card.BoardID,
		"card_id":  card.ID,
		"list_id":  card.ListID,
	})
	return card, nil
}

func (s *service) ArchiveCard(ctx context.Context, userID, id uint64) (*domain.Card, error) {
	grant, err := s.resolver.Card(userID, id, domain.ActionWrite)
	if err != nil {
		return nil, err
	}
	card := grant.Card
	if card.Archived {
		return nil, domain.Validation("card is already archived")
	}

	now := time.Now().UTC()
	card.Archived = true
	card.ArchivedAt = &now
	if err := s.repo.Update(card); err != nil {
		return nil, fmt.Errorf("archive card %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: card.WorkspaceID,
		BoardID:     &card.BoardID,
		EntityType:  "card",
		EntityID:    &card.ID,
		Action:      "archive",
		Message:     fmt.Sprintf("archived card %q", card.Title),
	})
	s.redisP.InvalidateBoard(ctx, card.BoardID)
	s.eventBus.Publish("card_archived", card.BoardID, map[string]any{
		"board_id": card.BoardID,
		"card_id":  card.ID,
	})
	return card, nil
}

func (s *service) RestoreCard(ctx context.Context, userID, id uint64) (*domain.Card, error) {
	grant, err := s.resolver.Card(userID, id, domain.ActionWrite)
	if err != nil {
		return nil, err
	}
	card := grant.Card
	if !card.Archived {
		return nil, domain.Validation("only archived cards can be restored")
	}

	card.Archived = false
	card.ArchivedAt = nil
	if err := s.repo.Update(card); err != nil {
		return nil, fmt.Errorf("restore card %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: card.WorkspaceID,
		BoardID:     &card.BoardID,
		EntityType:  "card",
		EntityID:    &card.ID,
		Action:      "restore",
		Message:     fmt.Sprintf("restored card %q", card.Title),
	})
	s.redisP.InvalidateBoard(ctx, card.BoardID)
	s.eventBus.Publish("card_restored", card.BoardID, map[string]any{
		"board_id": card.BoardID,
		"card_id":  card.ID,
	})
	return card, nil
}

// PermanentDelete is terminal and only reachable from the archived
// state, so a live card can never be destroyed in one step.
func (s *service) PermanentDelete(ctx context.Context, userID, id uint64) error {
	grant, err := s.resolver.Card(userID, id, domain.ActionWrite)
	if err != nil {
		return err
	}
	card := grant.Card
	if !card.Archived {
		return domain.Validation("only archived cards can be permanently deleted")
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("delete card %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: card.WorkspaceID,
		BoardID:     &card.BoardID,
		EntityType:  "card",
		EntityID:    &card.ID,
		Action:      "permanent_delete",
		Message:     fmt.Sprintf("permanently deleted card %q", card.Title),
	})
	s.redisP.InvalidateBoard(ctx, card.BoardID)
	s.eventBus.Publish("card_deleted", card.BoardID, map[string]any{
		"board_id": card.BoardID,
		"card_id":  card.ID,
	})
	return nil
}

func (s *service) checkLabels(workspaceID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := s.repo.CountLabelsInWorkspace(workspaceID, ids)
	if err != nil {
		return fmt.Errorf("check labels: %w", err)
	}
	if count != int64(len(ids)) {
		return domain.Validation("one or more labels do not belong to this workspace")
	}
	return nil
}
