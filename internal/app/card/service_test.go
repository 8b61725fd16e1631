package card

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

type fakeStore struct {
	workspaces map[uint64]*domain.Workspace
	boards     map[uint64]*domain.Board
	lists      map[uint64]*domain.List
	cards      map[uint64]*domain.Card
}

func (f *fakeStore) WorkspaceByID(id uint64) (*domain.Workspace, error) { return f.workspaces[id], nil }
func (f *fakeStore) BoardByID(id uint64) (*domain.Board, error)         { return f.boards[id], nil }
func (f *fakeStore) ListByID(id uint64) (*domain.List, error)           { return f.lists[id], nil }
func (f *fakeStore) CardByID(id uint64) (*domain.Card, error)           { return f.cards[id], nil }

func (f *fakeStore) BoardsByWorkspace(workspaceID uint64) ([]*domain.Board, error) {
	var out []*domain.Board
	for _, b := range f.boards {
		if b.WorkspaceID == workspaceID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeRepo struct {
	created    []*domain.Card
	updated    []*domain.Card
	deleted    []uint64
	labelCount int64
}

func (f *fakeRepo) Create(c *domain.Card) error {
	c.ID = uint64(len(f.created) + 1000)
	f.created = append(f.created, c)
	return nil
}

func (f *fakeRepo) Update(c *domain.Card) error {
	f.updated = append(f.updated, c)
	return nil
}

func (f *fakeRepo) Delete(id uint64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) CommentsByCard(uint64) ([]*domain.Comment, error)     { return nil, nil }
func (f *fakeRepo) ChecklistsByCard(uint64) ([]*domain.Checklist, error) { return nil, nil }

func (f *fakeRepo) CountLabelsInWorkspace(_ uint64, ids []uint64) (int64, error) {
	return f.labelCount, nil
}

type fakeEngine struct {
	nextByList map[uint64]int
}

func (f *fakeEngine) NextWorkspaceOrder(uint64) (int, error) { return 0, nil }
func (f *fakeEngine) NextBoardOrder(uint64) (int, error)     { return 0, nil }
func (f *fakeEngine) NextListOrder(uint64) (int, error)      { return 0, nil }

func (f *fakeEngine) NextCardOrder(listID uint64) (int, error) {
	return f.nextByList[listID], nil
}

func (f *fakeEngine) ReorderLists(uint64, []uint64) error { return nil }
func (f *fakeEngine) ReorderCards(uint64, []uint64) error { return nil }

type activityRepoStub struct{}

func (activityRepoStub) Create(*domain.Activity) error                           { return nil }
func (activityRepoStub) ListByBoard(uint64, int) ([]*domain.Activity, error)     { return nil, nil }
func (activityRepoStub) ListByWorkspace(uint64, int) ([]*domain.Activity, error) { return nil, nil }

const (
	editorUser   = 2
	viewerUser   = 3
	strangerUser = 5
)

type fixture struct {
	svc   Service
	store *fakeStore
	repo  *fakeRepo
	bus   *utils.EventBus
}

// newFixture wires the service over in-memory fakes. Workspace 100 has
// boards 10 and 11; list 7 is on board 10, list 8 on board 11. List 9
// belongs to a different workspace for cross-workspace cases.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := &fakeStore{
		workspaces: map[uint64]*domain.Workspace{
			100: {ID: 100, OwnerID: 1, Members: domain.RoleMap{
				1:          domain.RoleOwner,
				editorUser: domain.RoleEditor,
				viewerUser: domain.RoleViewer,
			}},
			200: {ID: 200, OwnerID: 9},
		},
		boards: map[uint64]*domain.Board{
			10: {ID: 10, OwnerID: 1, WorkspaceID: 100},
			11: {ID: 11, OwnerID: 1, WorkspaceID: 100},
			30: {ID: 30, OwnerID: 9, WorkspaceID: 200},
		},
		lists: map[uint64]*domain.List{
			7: {ID: 7, WorkspaceID: 100, BoardID: 10, Title: "Todo"},
			8: {ID: 8, WorkspaceID: 100, BoardID: 11, Title: "Doing"},
			9: {ID: 9, WorkspaceID: 200, BoardID: 30, Title: "Elsewhere"},
		},
		cards: map[uint64]*domain.Card{},
	}

	repo := &fakeRepo{}
	bus := utils.NewEventBus()
	audit := activity.NewLogger(activityRepoStub{}, zap.NewNop())
	go audit.Run()
	t.Cleanup(audit.Close)

	svc := NewService(
		repo,
		access.NewResolver(store),
		&fakeEngine{nextByList: map[uint64]int{7: 3, 8: 0}},
		audit,
		bus,
		redis.NewRedisProvider("redis://127.0.0.1:6377", zap.NewNop(), time.Minute),
		zap.NewNop(),
	)

	return &fixture{svc: svc, store: store, repo: repo, bus: bus}
}

func (f *fixture) addCard(c *domain.Card) *domain.Card {
	f.store.cards[c.ID] = c
	return c
}

func drainEvents(bus *utils.EventBus) []utils.Event {
	var out []utils.Event
	for {
		select {
		case e := <-bus.SubscribeCh():
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestCreateCard(t *testing.T) {
	f := newFixture(t)

	card, err := f.svc.CreateCard(context.Background(), editorUser, 7, CreateCardRequest{
		Title:       "  Write docs  ",
		Description: "readme first",
	})
	require.NoError(t, err)

	assert.Equal(t, "Write docs", card.Title)
	assert.Equal(t, uint64(100), card.WorkspaceID)
	assert.Equal(t, uint64(10), card.BoardID)
	assert.Equal(t, uint64(7), card.ListID)
	assert.Equal(t, uint64(editorUser), card.OwnerID)
	assert.Equal(t, 3, card.Order, "appends after existing active cards")

	events := drainEvents(f.bus)
	require.Len(t, events, 1)
	assert.Equal(t, "card_created", events[0].Type)
	assert.Equal(t, uint64(10), events[0].BoardID)
}

func TestCreateCardRejections(t *testing.T) {
	f := newFixture(t)

	t.Run("viewer cannot create", func(t *testing.T) {
		_, err := f.svc.CreateCard(context.Background(), viewerUser, 7, CreateCardRequest{Title: "x"})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, domain.AsError(err).Status)
	})

	t.Run("stranger cannot create", func(t *testing.T) {
		_, err := f.svc.CreateCard(context.Background(), strangerUser, 7, CreateCardRequest{Title: "x"})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, domain.AsError(err).Status)
	})

	t.Run("blank title", func(t *testing.T) {
		_, err := f.svc.CreateCard(context.Background(), editorUser, 7, CreateCardRequest{Title: "   "})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, domain.AsError(err).Status)
	})

	t.Run("missing list", func(t *testing.T) {
		_, err := f.svc.CreateCard(context.Background(), editorUser, 999, CreateCardRequest{Title: "x"})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, domain.AsError(err).Status)
	})

	t.Run("label from another workspace", func(t *testing.T) {
		f.repo.labelCount = 1
		_, err := f.svc.CreateCard(context.Background(), editorUser, 7, CreateCardRequest{
			Title:    "x",
			LabelIDs: []uint64{50, 51},
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, domain.AsError(err).Status)
	})
}

func TestUpdateCardArchivedIsFrozen(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()
	f.addCard(&domain.Card{ID: 70, WorkspaceID: 100, BoardID: 10, ListID: 7, Title: "old", Archived: true, ArchivedAt: &now})

	title := "new"
	_, err := f.svc.UpdateCard(context.Background(), editorUser, 70, UpdateCardRequest{Title: &title})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, domain.AsError(err).Status)
	assert.Empty(t, f.repo.updated)
}

func TestUpdateCardMove(t *testing.T) {
	f := newFixture(t)
	f.addCard(&domain.Card{ID: 70, WorkspaceID: 100, BoardID: 10, ListID: 7, Title: "movable", Order: 2})

	target := uint64(8)
	card, err := f.svc.UpdateCard(context.Background(), editorUser, 70, UpdateCardRequest{ListID: &target})
	require.NoError(t, err)

	assert.Equal(t, uint64(8), card.ListID)
	assert.Equal(t, uint64(11), card.BoardID, "board follows the destination list")
	assert.Equal(t, uint64(100), card.WorkspaceID)
	assert.Equal(t, 0, card.Order, "appends at the end of the destination list")

	events := drainEvents(f.bus)
	require.Len(t, events, 2, "both source and destination boards are notified")
	boards := map[uint64]bool{events[0].BoardID: true, events[1].BoardID: true}
	assert.True(t, boards[10])
	assert.True(t, boards[11])
	for _, e := range events {
		assert.Equal(t, "card_moved", e.Type)
	}
}

func TestUpdateCardMoveAcrossWorkspaces(t *testing.T) {
	f := newFixture(t)
	f.addCard(&domain.Card{ID: 70, WorkspaceID: 100, BoardID: 10, ListID: 7, Title: "stuck"})
	f.store.workspaces[200].Members = domain.RoleMap{editorUser: domain.RoleEditor}

	target := uint64(9)
	_, err := f.svc.UpdateCard(context.Background(), editorUser, 70, UpdateCardRequest{ListID: &target})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, domain.AsError(err).Status)
	assert.Empty(t, f.repo.updated)
}

func TestArchiveLifecycle(t *testing.T) {
	f := newFixture(t)
	f.addCard(&domain.Card{ID: 70, WorkspaceID: 100, BoardID: 10, ListID: 7, Title: "task"})

	card, err := f.svc.ArchiveCard(context.Background(), editorUser, 70)
	require.NoError(t, err)
	assert.True(t, card.Archived)
	require.NotNil(t, card.ArchivedAt)

	// the store reflects the archive; a second one must fail
	_, err = f.svc.ArchiveCard(context.Background(), editorUser, 70)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, domain.AsError(err).Status)

	restored, err := f.svc.RestoreCard(context.Background(), editorUser, 70)
	require.NoError(t, err)
	assert.False(t, restored.Archived)
	assert.Nil(t, restored.ArchivedAt)

	_, err = f.svc.RestoreCard(context.Background(), editorUser, 70)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, domain.AsError(err).Status)
}

func TestPermanentDelete(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()
	f.addCard(&domain.Card{ID: 70, WorkspaceID: 100, BoardID: 10, ListID: 7, Title: "gone", Archived: true, ArchivedAt: &now})
	f.addCard(&domain.Card{ID: 71, WorkspaceID: 100, BoardID: 10, ListID: 7, Title: "alive"})

	t.Run("active card cannot be destroyed", func(t *testing.T) {
		err := f.svc.PermanentDelete(context.Background(), editorUser, 71)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, domain.AsError(err).Status)
		assert.Empty(t, f.repo.deleted)
	})

	t.Run("archived card is destroyed", func(t *testing.T) {
		require.NoError(t, f.svc.PermanentDelete(context.Background(), editorUser, 70))
		assert.Equal(t, []uint64{70}, f.repo.deleted)
	})

	t.Run("viewer cannot destroy", func(t *testing.T) {
		err := f.svc.PermanentDelete(context.Background(), viewerUser, 70)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, domain.AsError(err).Status)
	})
}
