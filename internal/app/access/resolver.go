package access

import (
	"fmt"

	"backend/internal/domain"
)

// Store loads the snapshots the resolver walks. Implementations return
// (nil, nil) when the entity does not exist.
type Store interface {
	WorkspaceByID(id uint64) (*domain.Workspace, error)
	BoardByID(id uint64) (*domain.Board, error)
	ListByID(id uint64) (*domain.List, error)
	CardByID(id uint64) (*domain.Card, error)
	BoardsByWorkspace(workspaceID uint64) ([]*domain.Board, error)
}

// Grant is a successful resolution: the effective role plus the
// snapshots loaded on the way, so services never re-fetch what the
// resolver already read.
type Grant struct {
	Role      domain.Role
	Workspace *domain.Workspace
	Board     *domain.Board
	List      *domain.List
	Card      *domain.Card
}

// Resolver computes a caller's effective role across the
// workspace → board → list → card ownership chain. Resolution is pure
// logic over loaded snapshots; all failures are typed domain errors
// (404 when the entity is missing, 403 when the role is insufficient).
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Workspace resolves the caller's role on a workspace. Order of
// precedence: explicit membership entry, ownership, then implicit
// viewer when the caller collaborates on any board under the workspace
// (a board-only collaborator must still see the container).
func (r *Resolver) Workspace(userID, workspaceID uint64, min domain.Action) (*Grant, error) {
	ws, err := r.store.WorkspaceByID(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("load workspace %d: %w", workspaceID, err)
	}
	if ws == nil {
		return nil, domain.NotFound("workspace not found")
	}

	if role, ok := ws.Members.Get(userID); ok {
		return gate(&Grant{Role: role, Workspace: ws}, min)
	}
	if ws.OwnerID == userID {
		return gate(&Grant{Role: domain.RoleOwner, Workspace: ws}, min)
	}

	boards, err := r.store.BoardsByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("load boards of workspace %d: %w", workspaceID, err)
	}
	for _, b := range boards {
		if _, ok := b.Members.Get(userID); ok || b.OwnerID == userID {
			return gate(&Grant{Role: domain.RoleViewer, Workspace: ws}, min)
		}
	}

	return nil, domain.Forbidden("no access to this workspace")
}

// Board resolves the caller's role on a board. An empty member map is
// transparent inheritance from the workspace; a populated map is an
// explicit override, so even a workspace owner is denied when listed
// nowhere on it.
func (r *Resolver) Board(userID, boardID uint64, min domain.Action) (*Grant, error) {
	b, err := r.store.BoardByID(boardID)
	if err != nil {
		return nil, fmt.Errorf("load board %d: %w", boardID, err)
	}
	if b == nil {
		return nil, domain.NotFound("board not found")
	}

	if role, ok := b.Members.Get(userID); ok {
		return gate(&Grant{Role: role, Board: b}, min)
	}
	if b.OwnerID == userID {
		return gate(&Grant{Role: domain.RoleOwner, Board: b}, min)
	}
	if len(b.Members) == 0 {
		grant, err := r.Workspace(userID, b.WorkspaceID, min)
		if err != nil {
			return nil, err
		}
		grant.Board = b
		return grant, nil
	}

	return nil, domain.Forbidden("no access to this board")
}

// List resolves through the owning board; lists carry no membership.
func (r *Resolver) List(userID, listID uint64, min domain.Action) (*Grant, error) {
	l, err := r.store.ListByID(listID)
	if err != nil {
		return nil, fmt.Errorf("load list %d: %w", listID, err)
	}
	if l == nil {
		return nil, domain.NotFound("list not found")
	}
	grant, err := r.Board(userID, l.BoardID, min)
	if err != nil {
		return nil, err
	}
	grant.List = l
	return grant, nil
}

// Card resolves through the owning board; archived cards resolve the
// same way, restore and permanent deletion still need the role.
func (r *Resolver) Card(userID, cardID uint64, min domain.Action) (*Grant, error) {
	card, err := r.store.CardByID(cardID)
	if err != nil {
		return nil, fmt.Errorf("load card %d: %w", cardID, err)
	}
	if card == nil {
		return nil, domain.NotFound("card not found")
	}
	grant, err := r.Board(userID, card.BoardID, min)
	if err != nil {
		return nil, err
	}
	grant.Card = card
	return grant, nil
}

func gate(g *Grant, min domain.Action) (*Grant, error) {
	if !g.Role.Allows(min) {
		return nil, domain.Forbidden(fmt.Sprintf("role %q does not allow %q", g.Role, min))
	}
	return g, nil
}
