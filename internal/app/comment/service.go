package comment

import (
	"fmt"
	"strings"

	"backend/internal/app/access"
	"backend/internal/app/activity"
	"backend/internal/domain"
	"backend/internal/utils"

	"go.uber.org/zap"
)

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type Service interface {
	ListComments(userID, cardID uint64) ([]*domain.Comment, error)
	CreateComment(userID, cardID uint64, req CreateCommentRequest) (*domain.Comment, error)
	DeleteComment(userID, id uint64) error
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

func (s *service) ListComments(userID, cardID uint64) ([]*domain.Comment, error) {
	if _, err := s.resolver.Card(userID, cardID, domain.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.ByCard(cardID)
}

func (s *service) CreateComment(userID, cardID uint64, req CreateCommentRequest) (*domain.Comment, error) {
	grant, err := s.resolver.Card(userID, cardID, domain.ActionWrite)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, domain.Validation("comment content is required")
	}
	card := grant.Card

	cm := &domain.Comment{CardID: cardID, UserID: userID, Content: content}
	if err := s.repo.Create(cm); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: card.WorkspaceID,
		BoardID:     &card.BoardID,
		EntityType:  "comment",
		EntityID:    &cm.ID,
		Action:      "create",
		Message:     fmt.Sprintf("commented on card %q", card.Title),
	})
	s.eventBus.Publish("comment_created", card.BoardID, map[string]any{
		"board_id":   card.BoardID,
		"card_id":    card.ID,
		"comment_id": cm.ID,
	})
	return cm, nil
}

// DeleteComment is author-only: even a board owner cannot delete
// someone else's comment.
func (s *service) DeleteComment(userID, id uint64) error {
	cm, err := s.repo.ByID(id)
	if err != nil {
		return fmt.Errorf("load comment %d: %w", id, err)
	}
	if cm == nil {
		return domain.NotFound("comment not found")
	}
	grant, err := s.resolver.Card(userID, cm.CardID, domain.ActionWrite)
	if err != nil {
		return err
	}
	if cm.UserID != userID {
		return domain.Forbidden("only the author can delete a comment")
	}
	card := grant.Card

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}

	s.audit.Record(domain.Activity{
		ActorID:     userID,
		WorkspaceID: card.WorkspaceID,
		BoardID:     &card.BoardID,
		EntityType:  "comment",
		EntityID:    &cm.ID,
		Action:      "delete",
		Message:     fmt.Sprintf("deleted a comment on card %q", card.Title),
	})
	s.eventBus.Publish("comment_deleted", card.BoardID, map[string]any{
		"board_id":   card.BoardID,
		"card_id":    card.ID,
		"comment_id": cm.ID,
	})
	return nil
}
