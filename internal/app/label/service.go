package label

import (
	"context"
	"fmt"
	"strings"

	"backend/internal/app/access"
	"backend/internal/app/activity"
	"backend/internal/domain"
	"backend/internal/providers/redis"
	"backend/internal/utils"

	"go.uber.org/zap"
)

type CreateLabelRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required"`
}

type UpdateLabelRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

type Service interface {
	ListLabels(userID, workspaceID uint64) ([]*domain.Label, error)
	CreateLabel(userID, workspaceID uint64, req CreateLabelRequest) (*domain.Label, error)
	UpdateLabel(userID, id uint64, req UpdateLabelRequest) (*domain.Label, error)
	DeleteLabel(userID, id uint64) error
}

type service struct {
	repo     Repository
	resolver *access.Resolver
	audit    *activity.Logger
	eventBus *utils.EventBus
	redisP   *redis.RedisProvider
	logger   *zap.SugaredLogger
}

func NewService(
	repo Repository,
	resolver *access.Resolver,
	audit *activity.Logger,
	eventBus *utils.EventBus,
	redisP *redis.RedisProvider,
	logger *zap.Logger,
) Service {
	return &service{
		repo:     repo,
		resolver: resolver,
		audit:    audit,
		eventBus: eventBus,
		redisP:   redisP,
		logger:   logger.Sugar(),
	}
}

func (s *service) ListLabels(userID, workspaceID uint64) ([]*domain.Label, error) {
	if _, err := s.resolver.Workspace(userID, workspaceID, domain.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.ByWorkspace(workspaceID)
}

func (s *service) CreateLabel(userID, workspaceID uint64, req CreateLabelRequest) (*domain.Label, error) {
	if _, err := s.resolver.Workspace(userID, workspaceID, domain.ActionWrite); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.Validation("label name is required")
	}

	l := &domain.Label{WorkspaceID: workspaceID, Name: name, Color: req.Color}
	if err := s.repo.Create(l); err != nil {
		return nil, fmt.Errorf("create label: %w", err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: workspaceID,
		EntityType:  "label",
		EntityID:    &l.ID,
		Action:      "create",
		Message:     fmt.Sprintf("created label %q", l.Name),
	})
	s.publishToBoards(workspaceID, "label_created", map[string]any{"label_id": l.ID})
	return l, nil
}

func (s *service) UpdateLabel(userID, id uint64, req UpdateLabelRequest) (*domain.Label, error) {
	l, err := s.loadForWrite(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.Validation("label name cannot be empty")
		}
		l.Name = name
	}
	if req.Color != nil {
		l.Color = *req.Color
	}

	if err := s.repo.Update(l); err != nil {
		return nil, fmt.Errorf("update label %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: l.WorkspaceID,
		EntityType:  "label",
		EntityID:    &l.ID,
		Action:      "update",
		Message:     fmt.Sprintf("updated label %q", l.Name),
	})
	s.publishToBoards(l.WorkspaceID, "label_updated", map[string]any{"label_id": l.ID})
	return l, nil
}

// DeleteLabel removes the label and pulls its id out of every card
// that references it, so no card is left pointing at a dead label.
func (s *service) DeleteLabel(userID, id uint64) error {
	l, err := s.loadForWrite(userID, id)
	if err != nil {
		return err
	}

	cards, err := s.repo.CardsWithLabel(id)
	if err != nil {
		return fmt.Errorf("find cards with label %d: %w", id, err)
	}
	touched := make(map[uint64]bool)
	for _, card := range cards {
		kept := card.LabelIDs[:0]
		for _, labelID := range card.LabelIDs {
			if labelID != id {
				kept = append(kept, labelID)
			}
		}
		card.LabelIDs = kept
		if err := s.repo.SaveCard(card); err != nil {
			return fmt.Errorf("detach label %d from card %d: %w", id, card.ID, err)
		}
		touched[card.BoardID] = true
	}
	for boardID := range touched {
		s.redisP.InvalidateBoard(context.Background(), boardID)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("delete label %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: l.WorkspaceID,
		EntityType:  "label",
		EntityID:    &l.ID,
		Action:      "delete",
		Message:     fmt.Sprintf("deleted label %q", l.Name),
	})
	s.publishToBoards(l.WorkspaceID, "label_deleted", map[string]any{"label_id": l.ID})
	return nil
}

func (s *service) loadForWrite(userID, id uint64) (*domain.Label, error) {
	l, err := s.repo.ByID(id)
	if err != nil {
		return nil, fmt.Errorf("load label %d: %w", id, err)
	}
	if l == nil {
		return nil, domain.NotFound("label not found")
	}
	if _, err := s.resolver.Workspace(userID, l.WorkspaceID, domain.ActionWrite); err != nil {
		return nil, err
	}
	return l, nil
}

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
