package checklist

import (
	"fmt"
	"strings"

	"backend/internal/app/access"
	"backend/internal/app/activity"
	"backend/internal/domain"
	"backend/internal/utils"

	"go.uber.org/zap"
)

type ItemInput struct {
	ID        uint64 `json:"id,omitempty"`
	Text      string `json:"text" binding:"required"`
	Completed bool   `json:"completed"`
}

type CreateChecklistRequest struct {
	Title string      `json:"title" binding:"required"`
	Items []ItemInput `json:"items,omitempty"`
}

// UpdateChecklistRequest replaces the item sequence when items are
// present; item order is positional.
type UpdateChecklistRequest struct {
	Title *string      `json:"title,omitempty"`
	Items *[]ItemInput `json:"items,omitempty"`
}

type Service interface {
	ListChecklists(userID, cardID uint64) ([]*domain.Checklist, error)
	CreateChecklist(userID, cardID uint64, req CreateChecklistRequest) (*domain.Checklist, error)
	UpdateChecklist(userID, id uint64, req UpdateChecklistRequest) (*domain.Checklist, error)
	DeleteChecklist(userID, id uint64) error
}

type service struct {
	repo     Repository
	resolver *access.Resolver
	audit    *activity.Logger
	eventBus *utils.EventBus
	logger   *zap.SugaredLogger
}

func NewService(
	repo Repository,
	resolver *access.Resolver,
	audit *activity.Logger,
	eventBus *utils.EventBus,
	logger *zap.Logger,
) Service {
	return &service{
		repo:     repo,
		resolver: resolver,
		audit:    audit,
		eventBus: eventBus,
		logger:   logger.Sugar(),
	}
}

func (s *service) ListChecklists(userID, cardID uint64) ([]*domain.Checklist, error) {
	if _, err := s.resolver.Card(userID, cardID, domain.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.ByCard(cardID)
}

func (s *service) CreateChecklist(userID, cardID uint64, req CreateChecklistRequest) (*domain.Checklist, error) {
	grant, err := s.resolver.Card(userID, cardID, domain.ActionWrite)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.Validation("checklist title is required")
	}
	card := grant.Card

	cl := &domain.Checklist{
		CardID: cardID,
		Title:  title,
		Items:  normalizeItems(req.Items, 0),
	}
	if err := s.repo.Create(cl); err != nil {
		return nil, fmt.Errorf("create checklist: %w", err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: card.WorkspaceID,
		BoardID:     &card.BoardID,
		EntityType:  "checklist",
		EntityID:    &cl.ID,
		Action:      "create",
		Message:     fmt.Sprintf("added checklist %q to card %q", cl.Title, card.Title),
	})
	s.eventBus.Publish("checklist_created", card.BoardID, map[string]any{
		"board_id":     card.BoardID,
		"card_id":      card.ID,
		"checklist_id": cl.ID,
	})
	return cl, nil
}

func (s *service) UpdateChecklist(userID, id uint64, req UpdateChecklistRequest) (*domain.Checklist, error) {
	cl, card, err := s.loadForWrite(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.Validation("checklist title cannot be empty")
		}
		cl.Title = title
	}
	if req.Items != nil {
		maxID := uint64(0)
		for _, item := range cl.Items {
			if item.ID > maxID {
				maxID = item.ID
			}
		}
		cl.Items = normalizeItems(*req.Items, maxID)
	}

	if err := s.repo.Update(cl); err != nil {
		return nil, fmt.Errorf("update checklist %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: card.WorkspaceID,
		BoardID:     &card.BoardID,
		EntityType:  "checklist",
		EntityID:    &cl.ID,
		Action:      "update",
		Message:     fmt.Sprintf("updated checklist %q", cl.Title),
	})
	s.eventBus.Publish("checklist_updated", card.BoardID, map[string]any{
		"board_id":     card.BoardID,
		"card_id":      card.ID,
		"checklist_id": cl.ID,
	})
	return cl, nil
}

func (s *service) DeleteChecklist(userID, id uint64) error {
	cl, card, err := s.loadForWrite(userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("delete checklist %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: card.WorkspaceID,
		BoardID:     &card.BoardID,
		EntityType:  "checklist",
		EntityID:    &cl.ID,
		Action:      "delete",
		Message:     fmt.Sprintf("deleted checklist %q", cl.Title),
	})
	s.eventBus.Publish("checklist_deleted", card.BoardID, map[string]any{
		"board_id":     card.BoardID,
		"card_id":      card.ID,
		"checklist_id": cl.ID,
	})
	return nil
}

func (s *service) loadForWrite(userID, id uint64) (*domain.Checklist, *domain.Card, error) {
	cl, err := s.repo.ByID(id)
	if err != nil {
		return nil, nil, fmt.Errorf("load checklist %d: %w", id, err)
	}
	if cl == nil {
		return nil, nil, domain.NotFound("checklist not found")
	}
	grant, err := s.resolver.Card(userID, cl.CardID, domain.ActionWrite)
	if err != nil {
		return nil, nil, err
	}
	return cl, grant.Card, nil
}

// normalizeItems assigns dense positional order and fresh ids to items
// that arrive without one. Explicit ids are scanned up front so a
// minted id can never collide with one appearing later in the request.
func normalizeItems(inputs []ItemInput, maxID uint64) []domain.ChecklistItem {
	for _, in := range inputs {
		if in.ID > maxID {
			maxID = in.ID
		}
	}
	items := make([]domain.ChecklistItem, 0, len(inputs))
	for idx, in := range inputs {
		id := in.ID
		if id == 0 {
			maxID++
			id = maxID
		}
		items = append(items, domain.ChecklistItem{
			ID:        id,
			Text:      in.Text,
			Completed: in.Completed,
			Order:     idx,
		})
	}
	return items
}
