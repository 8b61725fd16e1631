package board

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
	boards     map[uint64]*domain.Board
	lists      []*domain.List
	cards      []*domain.Card
	deleted    []uint64
	savedWS    []*domain.Workspace
}

func (f *fakeRepo) Create(b *domain.Board) error {
	b.ID = uint64(len(f.boards) + 1)
	f.boards[b.ID] = b
	return nil
}

func (f *fakeRepo) Update(b *domain.Board) error {
	f.boards[b.ID] = b
	return nil
}

func (f *fakeRepo) Delete(id uint64) error {
	f.deleted = append(f.deleted, id)
	delete(f.boards, id)
	return nil
}

func (f *fakeRepo) ListsByBoard(boardID uint64) ([]*domain.List, error) {
	var out []*domain.List
	for _, l := range f.lists {
		if l.BoardID == boardID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeRepo) ActiveCardsByBoard(boardID uint64) ([]*domain.Card, error) {
	var out []*domain.Card
	for _, c := range f.cards {
		if c.BoardID == boardID && !c.Archived {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) WorkspaceByID(id uint64) (*domain.Workspace, error) {
	return f.workspaces[id], nil
}

func (f *fakeRepo) SaveWorkspace(ws *domain.Workspace) error {
	f.workspaces[ws.ID] = ws
	f.savedWS = append(f.savedWS, ws)
	return nil
}

type repoStore struct {
	repo *fakeRepo
}

func (s *repoStore) WorkspaceByID(id uint64) (*domain.Workspace, error) {
	return s.repo.workspaces[id], nil
}

func (s *repoStore) BoardByID(id uint64) (*domain.Board, error) {
	return s.repo.boards[id], nil
}

func (s *repoStore) ListByID(uint64) (*domain.List, error) { return nil, nil }
func (s *repoStore) CardByID(uint64) (*domain.Card, error) { return nil, nil }

func (s *repoStore) BoardsByWorkspace(workspaceID uint64) ([]*domain.Board, error) {
	var out []*domain.Board
	for _, b := range s.repo.boards {
		if b.WorkspaceID == workspaceID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeEngine struct {
	reordered [][]uint64
}

func (f *fakeEngine) NextWorkspaceOrder(uint64) (int, error) { return 0, nil }
func (f *fakeEngine) NextBoardOrder(uint64) (int, error)     { return 2, nil }
func (f *fakeEngine) NextListOrder(uint64) (int, error)      { return 0, nil }
func (f *fakeEngine) NextCardOrder(uint64) (int, error)      { return 0, nil }

func (f *fakeEngine) ReorderLists(_ uint64, ids []uint64) error {
	f.reordered = append(f.reordered, ids)
	return nil
}

func (f *fakeEngine) ReorderCards(uint64, []uint64) error { return nil }

type activityRepoStub struct{}

func (activityRepoStub) Create(*domain.Activity) error                           { return nil }
func (activityRepoStub) ListByBoard(uint64, int) ([]*domain.Activity, error)     { return nil, nil }
func (activityRepoStub) ListByWorkspace(uint64, int) ([]*domain.Activity, error) { return nil, nil }

const (
	ownerUser  = 1
	editorUser = 2
	viewerUser = 3
)

func newFixture(t *testing.T) (Service, *fakeRepo, *fakeEngine) {
	t.Helper()

	repo := &fakeRepo{
		workspaces: map[uint64]*domain.Workspace{
			100: {ID: 100, OwnerID: ownerUser, Members: domain.RoleMap{
				ownerUser:  domain.RoleOwner,
				editorUser: domain.RoleEditor,
				viewerUser: domain.RoleViewer,
			}},
		},
		boards: map[uint64]*domain.Board{
			10: {ID: 10, OwnerID: ownerUser, WorkspaceID: 100, Name: "Sprint"},
		},
		lists: []*domain.List{
			{ID: 7, WorkspaceID: 100, BoardID: 10, Title: "Todo", Order: 0},
			{ID: 8, WorkspaceID: 100, BoardID: 10, Title: "Done", Order: 1},
		},
		cards: []*domain.Card{
			{ID: 70, WorkspaceID: 100, BoardID: 10, ListID: 7, Title: "active"},
			{ID: 71, WorkspaceID: 100, BoardID: 10, ListID: 7, Title: "archived", Archived: true},
		},
	}

	audit := activity.NewLogger(activityRepoStub{}, zap.NewNop())
	go audit.Run()
	t.Cleanup(audit.Close)

	engine := &fakeEngine{}
	svc := NewService(
		repo,
		access.NewResolver(&repoStore{repo: repo}),
		engine,
		audit,
		utils.NewEventBus(),
		redis.NewRedisProvider("redis://127.0.0.1:6377", zap.NewNop(), time.Minute),
		zap.NewNop(),
	)
	return svc, repo, engine
}

func TestCreateBoardInheritsMembership(t *testing.T) {
	svc, _, _ := newFixture(t)

	b, err := svc.CreateBoard(editorUser, 100, CreateBoardRequest{Name: "  Roadmap  "})
	require.NoError(t, err)

	assert.Equal(t, "Roadmap", b.Name)
	assert.Equal(t, uint64(editorUser), b.OwnerID)
	assert.Equal(t, 2, b.Order)
	assert.Empty(t, b.Members, "a fresh board inherits the workspace membership")

	_, err = svc.CreateBoard(viewerUser, 100, CreateBoardRequest{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, domain.AsError(err).Status)
}

func TestGetBoardSnapshot(t *testing.T) {
	svc, _, _ := newFixture(t)

	snap, err := svc.GetBoard(context.Background(), viewerUser, 10)
	require.NoError(t, err)

	require.NotNil(t, snap.Board)
	assert.Equal(t, uint64(10), snap.Board.ID)
	require.Len(t, snap.Lists, 2)
	assert.Equal(t, "Todo", snap.Lists[0].Title)

	require.Len(t, snap.Lists[0].Cards, 1, "archived cards stay out of the snapshot")
	assert.Equal(t, "active", snap.Lists[0].Cards[0].Title)
	assert.NotNil(t, snap.Lists[1].Cards, "empty lists serialize as [] not null")
	assert.Empty(t, snap.Lists[1].Cards)
}

func TestUpsertMemberPropagatesToWorkspace(t *testing.T) {
	svc, repo, _ := newFixture(t)

	b, err := svc.UpsertMember(context.Background(), ownerUser, 10, UpsertMemberRequest{UserID: 55, Role: "editor"})
	require.NoError(t, err)

	role, ok := b.Members.Get(55)
	require.True(t, ok)
	assert.Equal(t, domain.RoleEditor, role)

	// the outsider becomes a workspace viewer so the container resolves
	wsRole, ok := repo.workspaces[100].Members.Get(55)
	require.True(t, ok)
	assert.Equal(t, domain.RoleViewer, wsRole)
}

func TestUpsertMemberKeepsExistingWorkspaceRole(t *testing.T) {
	svc, repo, _ := newFixture(t)

	_, err := svc.UpsertMember(context.Background(), ownerUser, 10, UpsertMemberRequest{UserID: editorUser, Role: "viewer"})
	require.NoError(t, err)

	wsRole, _ := repo.workspaces[100].Members.Get(editorUser)
	assert.Equal(t, domain.RoleEditor, wsRole, "an existing workspace role is never downgraded")
	assert.Empty(t, repo.savedWS)
}

func TestBoardMemberOverrideLocksOutWorkspaceMembers(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.UpsertMember(context.Background(), ownerUser, 10, UpsertMemberRequest{UserID: 55, Role: "editor"})
	require.NoError(t, err)

	// the member map is now non-empty: unlisted workspace members lose access
	_, err = svc.GetBoard(context.Background(), editorUser, 10)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, domain.AsError(err).Status)

	// the board owner still resolves
	_, err = svc.GetBoard(context.Background(), ownerUser, 10)
	assert.NoError(t, err)
}

func TestRemoveBoardMember(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.UpsertMember(context.Background(), ownerUser, 10, UpsertMemberRequest{UserID: 55, Role: "viewer"})
	require.NoError(t, err)

	t.Run("board owner cannot be removed", func(t *testing.T) {
		_, err := svc.RemoveMember(context.Background(), ownerUser, 10, ownerUser)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, domain.AsError(err).Status)
	})

	t.Run("absent member is 404", func(t *testing.T) {
		_, err := svc.RemoveMember(context.Background(), ownerUser, 10, 999)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, domain.AsError(err).Status)
	})

	t.Run("member is removed", func(t *testing.T) {
		b, err := svc.RemoveMember(context.Background(), ownerUser, 10, 55)
		require.NoError(t, err)
		_, ok := b.Members.Get(55)
		assert.False(t, ok)
	})
}

func TestReorderLists(t *testing.T) {
	svc, _, engine := newFixture(t)

	require.NoError(t, svc.ReorderLists(context.Background(), editorUser, 10, []uint64{8, 7}))
	require.Len(t, engine.reordered, 1)
	assert.Equal(t, []uint64{8, 7}, engine.reordered[0])

	err := svc.ReorderLists(context.Background(), viewerUser, 10, []uint64{7, 8})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, domain.AsError(err).Status)
}
