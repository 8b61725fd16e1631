package workspace

import (
	"context"
	"net/http"
	"testing"
	"time"

	"backend/internal/app/access"
	"backend/internal/app/activity"
	"backend/internal/domain"
	"backend/internal/providers/redis"
	"backend/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	workspaces map[uint64]*domain.Workspace
	boards     []*domain.Board
	deleted    []uint64
}

func (f *fakeRepo) ListForUser(uint64) ([]*domain.Workspace, error) { return nil, nil }

func (f *fakeRepo) Create(ws *domain.Workspace) error {
	ws.ID = uint64(len(f.workspaces) + 100)
	f.workspaces[ws.ID] = ws
	return nil
}

func (f *fakeRepo) Update(ws *domain.Workspace) error {
	f.workspaces[ws.ID] = ws
	return nil
}

func (f *fakeRepo) Delete(id uint64) error {
	f.deleted = append(f.deleted, id)
	delete(f.workspaces, id)
	return nil
}

func (f *fakeRepo) BoardsByWorkspace(id uint64) ([]*domain.Board, error) {
	var out []*domain.Board
	for _, b := range f.boards {
		if b.WorkspaceID == id {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ArchivedCards(uint64) ([]*domain.Card, error) { return nil, nil }

// repoStore adapts the fake repo into the resolver's store so both see
// the same in-memory state.
type repoStore struct {
	repo *fakeRepo
}

func (s *repoStore) WorkspaceByID(id uint64) (*domain.Workspace, error) {
	return s.repo.workspaces[id], nil
}

func (s *repoStore) BoardByID(id uint64) (*domain.Board, error) {
	for _, b := range s.repo.boards {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (s *repoStore) ListByID(uint64) (*domain.List, error) { return nil, nil }
func (s *repoStore) CardByID(uint64) (*domain.Card, error) { return nil, nil }

func (s *repoStore) BoardsByWorkspace(id uint64) ([]*domain.Board, error) {
	return s.repo.BoardsByWorkspace(id)
}

type fakeEngine struct{}

func (fakeEngine) NextWorkspaceOrder(uint64) (int, error) { return 4, nil }
func (fakeEngine) NextBoardOrder(uint64) (int, error)     { return 0, nil }
func (fakeEngine) NextListOrder(uint64) (int, error)      { return 0, nil }
func (fakeEngine) NextCardOrder(uint64) (int, error)      { return 0, nil }
func (fakeEngine) ReorderLists(uint64, []uint64) error    { return nil }
func (fakeEngine) ReorderCards(uint64, []uint64) error    { return nil }

type activityRepoStub struct{}

func (activityRepoStub) Create(*domain.Activity) error                           { return nil }
func (activityRepoStub) ListByBoard(uint64, int) ([]*domain.Activity, error)     { return nil, nil }
func (activityRepoStub) ListByWorkspace(uint64, int) ([]*domain.Activity, error) { return nil, nil }

const (
	ownerUser  = 1
	editorUser = 2
	viewerUser = 3
)

func newFixture(t *testing.T) (Service, *fakeRepo) {
	t.Helper()

	repo := &fakeRepo{workspaces: map[uint64]*domain.Workspace{
		100: {ID: 100, OwnerID: ownerUser, Name: "Acme", Members: domain.RoleMap{
			ownerUser:  domain.RoleOwner,
			editorUser: domain.RoleEditor,
			viewerUser: domain.RoleViewer,
		}},
	}}
	repo.boards = []*domain.Board{
		{ID: 10, OwnerID: ownerUser, WorkspaceID: 100},
		{ID: 11, OwnerID: ownerUser, WorkspaceID: 100},
	}

	audit := activity.NewLogger(activityRepoStub{}, zap.NewNop())
	go audit.Run()
	t.Cleanup(audit.Close)

	svc := NewService(
		repo,
		access.NewResolver(&repoStore{repo: repo}),
		fakeEngine{},
		audit,
		utils.NewEventBus(),
		redis.NewRedisProvider("redis://127.0.0.1:6377", zap.NewNop(), time.Minute),
		zap.NewNop(),
	)
	return svc, repo
}

func TestCreateWorkspace(t *testing.T) {
	svc, repo := newFixture(t)

	ws, err := svc.CreateWorkspace(7, CreateWorkspaceRequest{Name: "  New Space  "})
	require.NoError(t, err)

	assert.Equal(t, "New Space", ws.Name)
	assert.Equal(t, uint64(7), ws.OwnerID)
	assert.Equal(t, 4, ws.Order, "appends after the caller's existing workspaces")

	role, ok := ws.Members.Get(7)
	require.True(t, ok, "creator must be seeded as a member")
	assert.Equal(t, domain.RoleOwner, role)
	assert.Contains(t, repo.workspaces, ws.ID)

	_, err = svc.CreateWorkspace(7, CreateWorkspaceRequest{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, domain.AsError(err).Status)
}

func TestUpsertMember(t *testing.T) {
	svc, _ := newFixture(t)

	t.Run("owner grants a role", func(t *testing.T) {
		ws, err := svc.UpsertMember(ownerUser, 100, UpsertMemberRequest{UserID: 42, Role: "editor"})
		require.NoError(t, err)
		role, ok := ws.Members.Get(42)
		require.True(t, ok)
		assert.Equal(t, domain.RoleEditor, role)
	})

	t.Run("role change overwrites", func(t *testing.T) {
		ws, err := svc.UpsertMember(ownerUser, 100, UpsertMemberRequest{UserID: 42, Role: "viewer"})
		require.NoError(t, err)
		role, _ := ws.Members.Get(42)
		assert.Equal(t, domain.RoleViewer, role)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, err := svc.UpsertMember(ownerUser, 100, UpsertMemberRequest{UserID: 42, Role: "admin"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, domain.AsError(err).Status)
	})

	t.Run("editor cannot manage members", func(t *testing.T) {
		_, err := svc.UpsertMember(editorUser, 100, UpsertMemberRequest{UserID: 42, Role: "viewer"})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, domain.AsError(err).Status)
	})
}

func TestRemoveMember(t *testing.T) {
	svc, _ := newFixture(t)

	t.Run("owner cannot be removed", func(t *testing.T) {
		_, err := svc.RemoveMember(ownerUser, 100, ownerUser)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, domain.AsError(err).Status)
	})

	t.Run("absent member is 404", func(t *testing.T) {
		_, err := svc.RemoveMember(ownerUser, 100, 999)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, domain.AsError(err).Status)
	})

	t.Run("member is removed", func(t *testing.T) {
		ws, err := svc.RemoveMember(ownerUser, 100, viewerUser)
		require.NoError(t, err)
		_, ok := ws.Members.Get(viewerUser)
		assert.False(t, ok)
	})

	t.Run("editor cannot remove anyone", func(t *testing.T) {
		_, err := svc.RemoveMember(editorUser, 100, editorUser)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, domain.AsError(err).Status)
	})
}

func TestDeleteWorkspace(t *testing.T) {
	svc, repo := newFixture(t)

	t.Run("editor cannot delete", func(t *testing.T) {
		err := svc.DeleteWorkspace(context.Background(), editorUser, 100)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, domain.AsError(err).Status)
	})

	t.Run("owner deletes the subtree", func(t *testing.T) {
		require.NoError(t, svc.DeleteWorkspace(context.Background(), ownerUser, 100))
		assert.Equal(t, []uint64{100}, repo.deleted)
	})

	t.Run("gone workspace is 404", func(t *testing.T) {
		err := svc.DeleteWorkspace(context.Background(), ownerUser, 100)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, domain.AsError(err).Status)
	})
}
