package access

import (
	"net/http"
	"testing"

	"backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	workspaces map[uint64]*domain.Workspace
	boards     map[uint64]*domain.Board
	lists      map[uint64]*domain.List
	cards      map[uint64]*domain.Card
}

func (f *fakeStore) WorkspaceByID(id uint64) (*domain.Workspace, error) {
	return f.workspaces[id], nil
}

func (f *fakeStore) BoardByID(id uint64) (*domain.Board, error) {
	return f.boards[id], nil
}

func (f *fakeStore) ListByID(id uint64) (*domain.List, error) {
	return f.lists[id], nil
}

func (f *fakeStore) CardByID(id uint64) (*domain.Card, error) {
	return f.cards[id], nil
}

func (f *fakeStore) BoardsByWorkspace(workspaceID uint64) ([]*domain.Board, error) {
	var out []*domain.Board
	for _, b := range f.boards {
		if b.WorkspaceID == workspaceID {
			out = append(out, b)
		}
	}
	return out, nil
}

const (
	ownerID       = 1
	editorID      = 2
	viewerID      = 3
	boardOnlyID   = 4
	strangerID    = 5
	boardViewerID = 6
)

// fixtureStore builds one workspace with two boards: board 10 inherits
// workspace membership, board 20 carries an explicit override.
func fixtureStore() *fakeStore {
	return &fakeStore{
		workspaces: map[uint64]*domain.Workspace{
			100: {
				ID:      100,
				OwnerID: ownerID,
				Members: domain.RoleMap{
					ownerID:  domain.RoleOwner,
					editorID: domain.RoleEditor,
					viewerID: domain.RoleViewer,
				},
			},
		},
		boards: map[uint64]*domain.Board{
			10: {ID: 10, OwnerID: ownerID, WorkspaceID: 100},
			20: {
				ID:          20,
				OwnerID:     editorID,
				WorkspaceID: 100,
				Members: domain.RoleMap{
					editorID:      domain.RoleOwner,
					boardOnlyID:   domain.RoleEditor,
					boardViewerID: domain.RoleViewer,
				},
			},
		},
		lists: map[uint64]*domain.List{
			7: {ID: 7, WorkspaceID: 100, BoardID: 10},
		},
		cards: map[uint64]*domain.Card{
			70: {ID: 70, WorkspaceID: 100, BoardID: 20, ListID: 7},
		},
	}
}

func TestResolverWorkspace(t *testing.T) {
	r := NewResolver(fixtureStore())

	tests := []struct {
		name       string
		userID     uint64
		min        domain.Action
		wantRole   domain.Role
		wantStatus int
	}{
		{"owner can manage", ownerID, domain.ActionManage, domain.RoleOwner, 0},
		{"editor can write", editorID, domain.ActionWrite, domain.RoleEditor, 0},
		{"editor cannot manage", editorID, domain.ActionManage, "", http.StatusForbidden},
		{"viewer can read", viewerID, domain.ActionRead, domain.RoleViewer, 0},
		{"viewer cannot write", viewerID, domain.ActionWrite, "", http.StatusForbidden},
		{"board collaborator gets implicit viewer", boardOnlyID, domain.ActionRead, domain.RoleViewer, 0},
		{"implicit viewer cannot write", boardOnlyID, domain.ActionWrite, "", http.StatusForbidden},
		{"stranger is denied", strangerID, domain.ActionRead, "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grant, err := r.Workspace(tt.userID, 100, tt.min)
			if tt.wantStatus != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, domain.AsError(err).Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, grant.Role)
			require.NotNil(t, grant.Workspace)
			assert.Equal(t, uint64(100), grant.Workspace.ID)
		})
	}
}

func TestResolverWorkspaceMissing(t *testing.T) {
	r := NewResolver(fixtureStore())

	_, err := r.Workspace(ownerID, 999, domain.ActionRead)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, domain.AsError(err).Status)
}

func TestResolverBoardInheritance(t *testing.T) {
	r := NewResolver(fixtureStore())

	t.Run("empty members inherit workspace roles", func(t *testing.T) {
		grant, err := r.Board(editorID, 10, domain.ActionWrite)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleEditor, grant.Role)
		require.NotNil(t, grant.Board)
		assert.Equal(t, uint64(10), grant.Board.ID)
	})

	t.Run("workspace viewer inherits as viewer", func(t *testing.T) {
		grant, err := r.Board(viewerID, 10, domain.ActionRead)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleViewer, grant.Role)

		_, err = r.Board(viewerID, 10, domain.ActionWrite)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, domain.AsError(err).Status)
	})

	t.Run("stranger denied on inheriting board", func(t *testing.T) {
		_, err := r.Board(strangerID, 10, domain.ActionRead)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, domain.AsError(err).Status)
	})
}

func TestResolverBoardOverride(t *testing.T) {
	r := NewResolver(fixtureStore())

	t.Run("explicit members win over workspace role", func(t *testing.T) {
		grant, err := r.Board(editorID, 20, domain.ActionManage)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleOwner, grant.Role)
	})

	t.Run("override shuts out unlisted workspace owner", func(t *testing.T) {
		_, err := r.Board(viewerID, 20, domain.ActionRead)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, domain.AsError(err).Status)
	})

	t.Run("board owner keeps access when unlisted", func(t *testing.T) {
		store := fixtureStore()
		store.boards[20].Members = domain.RoleMap{boardOnlyID: domain.RoleEditor}
		grant, err := NewResolver(store).Board(editorID, 20, domain.ActionManage)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleOwner, grant.Role)
	})

	t.Run("missing board is 404", func(t *testing.T) {
		_, err := r.Board(ownerID, 999, domain.ActionRead)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, domain.AsError(err).Status)
	})
}

func TestResolverListDelegatesToBoard(t *testing.T) {
	r := NewResolver(fixtureStore())

	grant, err := r.List(editorID, 7, domain.ActionWrite)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEditor, grant.Role)
	require.NotNil(t, grant.List)
	assert.Equal(t, uint64(7), grant.List.ID)
	require.NotNil(t, grant.Board)

	_, err = r.List(strangerID, 7, domain.ActionRead)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, domain.AsError(err).Status)

	_, err = r.List(ownerID, 999, domain.ActionRead)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, domain.AsError(err).Status)
}

func TestResolverCardDelegatesToBoard(t *testing.T) {
	r := NewResolver(fixtureStore())

	// card 70 lives on board 20, which overrides workspace membership
	grant, err := r.Card(boardOnlyID, 70, domain.ActionWrite)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEditor, grant.Role)
	require.NotNil(t, grant.Card)
	assert.Equal(t, uint64(70), grant.Card.ID)

	_, err = r.Card(viewerID, 70, domain.ActionRead)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, domain.AsError(err).Status)

	_, err = r.Card(ownerID, 999, domain.ActionRead)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, domain.AsError(err).Status)
}
