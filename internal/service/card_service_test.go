package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
)

type mockListLookup struct {
	lists map[int64]*models.List
}

func (m *mockListLookup) add(id, boardID int64, title string) *models.List {
	list := &models.List{ID: id, BoardID: boardID, Title: title}
	m.lists[id] = list
	return list
}

func (m *mockListLookup) FindByID(ctx context.Context, id int64) (*models.List, error) {
	if list, ok := m.lists[id]; ok {
		return list, nil
	}
	return nil, sql.ErrNoRows
}

type mockCardRepo struct {
	cards  map[int64]*models.Card
	lists  *mockListLookup
	nextID int64
	moves  []struct {
		cardID, listID int64
		position       int
	}
}

func newMockCardRepo(lists *mockListLookup) *mockCardRepo {
	return &mockCardRepo{cards: make(map[int64]*models.Card), lists: lists, nextID: 1}
}

func (m *mockCardRepo) addCard(listID, createdBy int64, title string) *models.Card {
	card := &models.Card{ID: m.nextID, ListID: listID, Title: title, Priority: models.PriorityLow, CreatedBy: createdBy}
	m.nextID++
	m.cards[card.ID] = card
	return card
}

func (m *mockCardRepo) ListVisible(ctx context.Context, userID int64, filter models.CardFilter) ([]models.Card, error) {
	var out []models.Card
	for _, card := range m.cards {
		out = append(out, *card)
	}
	return out, nil
}

func (m *mockCardRepo) FindByID(ctx context.Context, id int64) (*models.Card, error) {
	if card, ok := m.cards[id]; ok {
		copied := *card
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCardRepo) BoardID(ctx context.Context, cardID int64) (int64, error) {
	card, ok := m.cards[cardID]
	if !ok {
		return 0, sql.ErrNoRows
	}
	list, ok := m.lists.lists[card.ListID]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return list.BoardID, nil
}

func (m *mockCardRepo) Create(ctx context.Context, card *models.Card) error {
	card.ID = m.nextID
	m.nextID++
	m.cards[card.ID] = card
	return nil
}

func (m *mockCardRepo) Update(ctx context.Context, card *models.Card, setAssignees, setLabels bool) error {
	stored, ok := m.cards[card.ID]
	if !ok {
		return sql.ErrNoRows
	}
	*stored = *card
	return nil
}

func (m *mockCardRepo) Delete(ctx context.Context, id int64) error {
	delete(m.cards, id)
	return nil
}

func (m *mockCardRepo) Move(ctx context.Context, cardID, targetListID int64, position int) error {
	card, ok := m.cards[cardID]
	if !ok {
		return sql.ErrNoRows
	}
	card.ListID = targetListID
	card.Position = position
	m.moves = append(m.moves, struct {
		cardID, listID int64
		position       int
	}{cardID, targetListID, position})
	return nil
}

type cardServiceFixture struct {
	svc        *CardService
	repo       *mockCardRepo
	lists      *mockListLookup
	members    *mockMembershipRepo
	activities *mockActivityRepo
}

func newCardServiceFixture() *cardServiceFixture {
	members := newMockMembershipRepo()
	lists := &mockListLookup{lists: make(map[int64]*models.List)}
	repo := newMockCardRepo(lists)
	activities := &mockActivityRepo{}
	access := NewAccess(members, &mockRoleRepo{})
	activitySvc := NewActivityService(activities, nil, zap.NewNop())
	svc := NewCardService(repo, lists, access, activitySvc, validator.New(), zap.NewNop())
	return &cardServiceFixture{svc: svc, repo: repo, lists: lists, members: members, activities: activities}
}

func TestCardServiceCreateNormalizesPriority(t *testing.T) {
	f := newCardServiceFixture()
	f.members.addBoard(1, 10)
	f.lists.add(1, 1, "Pendiente")

	card, err := f.svc.Create(context.Background(), 10, models.CreateCardRequest{ListID: 1, Title: "Tarea", Priority: "medium"})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMed, card.Priority)
	assert.Equal(t, int64(10), card.CreatedBy)

	require.Len(t, f.activities.recorded, 1)
	assert.Equal(t, models.ActivityCreated, f.activities.recorded[0].Action)
}

func TestCardServiceCreateRejectsUnknownPriority(t *testing.T) {
	f := newCardServiceFixture()
	f.lists.add(1, 1, "Pendiente")

	_, err := f.svc.Create(context.Background(), 10, models.CreateCardRequest{ListID: 1, Title: "Tarea", Priority: "urgent"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestCardServiceCreateMissingList(t *testing.T) {
	f := newCardServiceFixture()

	_, err := f.svc.Create(context.Background(), 10, models.CreateCardRequest{ListID: 9, Title: "Tarea"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestCardServiceGetVisibility(t *testing.T) {
	f := newCardServiceFixture()
	f.members.addBoard(1, 10)
	f.lists.add(1, 1, "Pendiente")
	card := f.repo.addCard(1, 10, "Tarea")
	card.Assignees = []int64{33}

	// Board member sees the card.
	_, err := f.svc.Get(context.Background(), 10, card.ID)
	require.NoError(t, err)

	// Assignee sees the card without membership.
	_, err = f.svc.Get(context.Background(), 33, card.ID)
	require.NoError(t, err)

	// Everyone else does not.
	_, err = f.svc.Get(context.Background(), 99, card.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, appErrors.FromError(err).Status)
}

func TestCardServiceMoveValidationOrder(t *testing.T) {
	f := newCardServiceFixture()
	f.members.addBoard(1, 10)
	f.lists.add(1, 1, "Pendiente")
	card := f.repo.addCard(1, 10, "Tarea")

	listID := int64(2)
	position := 0

	// Missing card wins over missing fields.
	_, err := f.svc.Move(context.Background(), 10, 999, models.MoveCardRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)

	// Both fields are required.
	_, err = f.svc.Move(context.Background(), 10, card.ID, models.MoveCardRequest{ListID: &listID})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)

	// Target list must exist.
	_, err = f.svc.Move(context.Background(), 10, card.ID, models.MoveCardRequest{ListID: &listID, Position: &position})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)

	// Destination board membership is required.
	f.lists.add(2, 2, "Hecho")
	_, err = f.svc.Move(context.Background(), 10, card.ID, models.MoveCardRequest{ListID: &listID, Position: &position})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, appErrors.FromError(err).Status)
}

func TestCardServiceMoveAcrossBoards(t *testing.T) {
	f := newCardServiceFixture()
	f.members.addBoard(1, 10)
	f.members.addBoard(2, 10)
	f.lists.add(1, 1, "Pendiente")
	f.lists.add(2, 2, "Hecho")
	card := f.repo.addCard(1, 10, "Tarea")

	listID := int64(2)
	position := 3
	moved, err := f.svc.Move(context.Background(), 10, card.ID, models.MoveCardRequest{ListID: &listID, Position: &position})
	require.NoError(t, err)
	assert.Equal(t, int64(2), moved.ListID)

	require.Len(t, f.repo.moves, 1)
	assert.Equal(t, card.ID, f.repo.moves[0].cardID)

	require.Len(t, f.activities.recorded, 1)
	activity := f.activities.recorded[0]
	assert.Equal(t, models.ActivityMoved, activity.Action)
	require.NotNil(t, activity.BoardID)
	assert.Equal(t, int64(2), *activity.BoardID)
}

func TestCardServiceUpdateLeavesLinksWhenNil(t *testing.T) {
	f := newCardServiceFixture()
	f.members.addBoard(1, 10)
	f.lists.add(1, 1, "Pendiente")
	card := f.repo.addCard(1, 10, "Tarea")
	card.Assignees = []int64{33}

	title := "Tarea renombrada"
	updated, err := f.svc.Update(context.Background(), 10, card.ID, models.UpdateCardRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Tarea renombrada", updated.Title)
	assert.Equal(t, []int64{33}, []int64(updated.Assignees))
}
