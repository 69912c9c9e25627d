package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
)

type mockBoardRepo struct {
	boards  map[int64]*models.Board
	members *mockMembershipRepo
	nextID  int64
}

func newMockBoardRepo(members *mockMembershipRepo) *mockBoardRepo {
	return &mockBoardRepo{boards: make(map[int64]*models.Board), members: members, nextID: 1}
}

func (m *mockBoardRepo) addBoard(ownerID int64, name string) *models.Board {
	board := &models.Board{ID: m.nextID, Name: name, CreatedAt: time.Now(), Owner: models.UserPublic{ID: ownerID}}
	m.nextID++
	m.boards[board.ID] = board
	m.members.addBoard(board.ID, ownerID)
	return board
}

func (m *mockBoardRepo) ListForMember(ctx context.Context, userID int64) ([]models.Board, error) {
	var out []models.Board
	for _, board := range m.boards {
		if m.members.members[board.ID][userID] {
			out = append(out, *board)
		}
	}
	return out, nil
}

func (m *mockBoardRepo) FindByID(ctx context.Context, id int64) (*models.Board, error) {
	if board, ok := m.boards[id]; ok {
		copied := *board
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockBoardRepo) Create(ctx context.Context, board *models.Board) error {
	board.ID = m.nextID
	m.nextID++
	m.boards[board.ID] = board
	m.members.addBoard(board.ID, board.Owner.ID)
	return nil
}

func (m *mockBoardRepo) Update(ctx context.Context, id int64, name, color string) error {
	board, ok := m.boards[id]
	if !ok {
		return sql.ErrNoRows
	}
	board.Name, board.Color = name, color
	return nil
}

func (m *mockBoardRepo) Delete(ctx context.Context, id int64) error {
	delete(m.boards, id)
	return nil
}

func (m *mockBoardRepo) AddMember(ctx context.Context, boardID, userID int64) error {
	m.members.addMember(boardID, userID)
	return nil
}

func (m *mockBoardRepo) Members(ctx context.Context, boardID int64) ([]models.UserPublic, error) {
	var out []models.UserPublic
	for userID := range m.members.members[boardID] {
		out = append(out, models.UserPublic{ID: userID})
	}
	return out, nil
}

type mockUserLookup struct {
	users map[int64]*models.User
}

func newMockUserLookup() *mockUserLookup {
	return &mockUserLookup{users: make(map[int64]*models.User)}
}

func (m *mockUserLookup) add(id int64, username string) *models.User {
	user := &models.User{ID: id, Username: username}
	m.users[id] = user
	return user
}

func (m *mockUserLookup) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserLookup) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

type mockExportRepo struct {
	rows map[int64][]models.BoardExportRow
}

func (m *mockExportRepo) ListBoardRows(ctx context.Context, boardID int64) ([]models.BoardExportRow, error) {
	return m.rows[boardID], nil
}

type mockActivityRepo struct {
	recorded []models.Activity
}

func (m *mockActivityRepo) Create(ctx context.Context, activity *models.Activity) error {
	m.recorded = append(m.recorded, *activity)
	return nil
}

func (m *mockActivityRepo) ListForMember(ctx context.Context, userID int64, filter models.ActivityFilter) ([]models.Activity, error) {
	return m.recorded, nil
}

type boardServiceFixture struct {
	svc        *BoardService
	repo       *mockBoardRepo
	users      *mockUserLookup
	exports    *mockExportRepo
	roles      *mockRoleRepo
	activities *mockActivityRepo
}

func newBoardServiceFixture() *boardServiceFixture {
	members := newMockMembershipRepo()
	repo := newMockBoardRepo(members)
	users := newMockUserLookup()
	exports := &mockExportRepo{rows: make(map[int64][]models.BoardExportRow)}
	roles := &mockRoleRepo{roles: make(map[int64]models.Role)}
	activities := &mockActivityRepo{}
	access := NewAccess(members, roles)
	activitySvc := NewActivityService(activities, nil, zap.NewNop())
	svc := NewBoardService(repo, users, exports, access, activitySvc, validator.New(), zap.NewNop())
	return &boardServiceFixture{svc: svc, repo: repo, users: users, exports: exports, roles: roles, activities: activities}
}

func TestBoardServiceGetRequiresMembership(t *testing.T) {
	f := newBoardServiceFixture()
	board := f.repo.addBoard(10, "Proyecto")

	_, err := f.svc.Get(context.Background(), 99, board.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, appErrors.FromError(err).Status)

	got, err := f.svc.Get(context.Background(), 10, board.ID)
	require.NoError(t, err)
	assert.Equal(t, "Proyecto", got.Name)
}

func TestBoardServiceGetMissingBoard(t *testing.T) {
	f := newBoardServiceFixture()

	_, err := f.svc.Get(context.Background(), 10, 404)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestBoardServiceCreateMakesCallerOwnerAndMember(t *testing.T) {
	f := newBoardServiceFixture()
	f.users.add(10, "ana")

	board, err := f.svc.Create(context.Background(), 10, models.CreateBoardRequest{Name: "Proyecto", Color: "#fff"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), board.Owner.ID)
	assert.Equal(t, "ana", board.Owner.Username)

	got, err := f.svc.Get(context.Background(), 10, board.ID)
	require.NoError(t, err)
	assert.Equal(t, board.ID, got.ID)
}

func TestBoardServiceDeleteOnlyOwnerOrTeacher(t *testing.T) {
	f := newBoardServiceFixture()
	board := f.repo.addBoard(10, "Proyecto")
	f.repo.AddMember(context.Background(), board.ID, 30)
	f.roles.roles[20] = models.RoleTeacher

	err := f.svc.Delete(context.Background(), 30, board.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, appErrors.FromError(err).Status)

	require.NoError(t, f.svc.Delete(context.Background(), 20, board.ID))
}

func TestBoardServiceInvite(t *testing.T) {
	f := newBoardServiceFixture()
	board := f.repo.addBoard(10, "Proyecto")
	f.users.add(11, "bruno")

	err := f.svc.Invite(context.Background(), 10, board.ID, models.InviteRequest{Username: "bruno"})
	require.NoError(t, err)

	assert.True(t, f.repo.members.members[board.ID][11])

	require.Len(t, f.activities.recorded, 1)
	activity := f.activities.recorded[0]
	assert.Equal(t, models.ActivityUpdated, activity.Action)
	var meta map[string]string
	require.NoError(t, json.Unmarshal(activity.Meta, &meta))
	assert.Equal(t, "bruno", meta["invited"])
}

func TestBoardServiceInviteForbiddenForPlainMember(t *testing.T) {
	f := newBoardServiceFixture()
	board := f.repo.addBoard(10, "Proyecto")
	f.repo.AddMember(context.Background(), board.ID, 30)
	f.users.add(11, "bruno")

	err := f.svc.Invite(context.Background(), 30, board.ID, models.InviteRequest{Username: "bruno"})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, appErrors.FromError(err).Status)
}

func TestBoardServiceInviteUnknownUser(t *testing.T) {
	f := newBoardServiceFixture()
	board := f.repo.addBoard(10, "Proyecto")

	err := f.svc.Invite(context.Background(), 10, board.ID, models.InviteRequest{Username: "ghost"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestBoardServiceExport(t *testing.T) {
	f := newBoardServiceFixture()
	board := f.repo.addBoard(10, "Proyecto")
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	f.exports.rows[board.ID] = []models.BoardExportRow{
		{ListTitle: "Pendiente", Title: "Tarea", Priority: models.PriorityHigh, DueDate: &due, Position: 0},
	}

	res, err := f.svc.Export(context.Background(), 10, board.ID, ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", res.ContentType)
	assert.Contains(t, string(res.Data), "Tarea")
	assert.Contains(t, string(res.Data), "2026-03-01")

	res, err = f.svc.Export(context.Background(), 10, board.ID, ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", res.ContentType)
	assert.NotEmpty(t, res.Data)

	_, err = f.svc.Export(context.Background(), 10, board.ID, "xml")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}
