package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
)

type mockCommentRepo struct {
	comments map[int64]*models.Comment
	nextID   int64
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[int64]*models.Comment), nextID: 1}
}

func (m *mockCommentRepo) ListForMember(ctx context.Context, userID int64, cardID *int64) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range m.comments {
		out = append(out, *comment)
	}
	return out, nil
}

func (m *mockCommentRepo) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	if comment, ok := m.comments[id]; ok {
		copied := *comment
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = m.nextID
	m.nextID++
	m.comments[comment.ID] = comment
	return nil
}

func (m *mockCommentRepo) Update(ctx context.Context, id int64, content string) error {
	comment, ok := m.comments[id]
	if !ok {
		return sql.ErrNoRows
	}
	comment.Content = content
	return nil
}

func (m *mockCommentRepo) Delete(ctx context.Context, id int64) error {
	delete(m.comments, id)
	return nil
}

type mockBoardResolver struct {
	boards map[int64]int64
}

func (m *mockBoardResolver) BoardID(ctx context.Context, cardID int64) (int64, error) {
	boardID, ok := m.boards[cardID]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return boardID, nil
}

type commentServiceFixture struct {
	svc        *CommentService
	repo       *mockCommentRepo
	cards      *mockBoardResolver
	users      *mockUserLookup
	members    *mockMembershipRepo
	activities *mockActivityRepo
}

func newCommentServiceFixture() *commentServiceFixture {
	members := newMockMembershipRepo()
	repo := newMockCommentRepo()
	cards := &mockBoardResolver{boards: make(map[int64]int64)}
	users := newMockUserLookup()
	activities := &mockActivityRepo{}
	access := NewAccess(members, &mockRoleRepo{})
	activitySvc := NewActivityService(activities, nil, zap.NewNop())
	svc := NewCommentService(repo, cards, users, access, activitySvc, validator.New(), zap.NewNop())
	return &commentServiceFixture{svc: svc, repo: repo, cards: cards, users: users, members: members, activities: activities}
}

func TestCommentServiceCreateRecordsActivity(t *testing.T) {
	f := newCommentServiceFixture()
	f.members.addBoard(1, 10)
	f.cards.boards[5] = 1
	f.users.add(10, "ana")

	comment, err := f.svc.Create(context.Background(), 10, models.CreateCommentRequest{CardID: 5, Content: "hola"})
	require.NoError(t, err)
	assert.Equal(t, "ana", comment.Author.Username)

	require.Len(t, f.activities.recorded, 1)
	activity := f.activities.recorded[0]
	assert.Equal(t, models.ActivityCommented, activity.Action)
	var meta map[string]int64
	require.NoError(t, json.Unmarshal(activity.Meta, &meta))
	assert.Equal(t, comment.ID, meta["comment"])
}

func TestCommentServiceCreateRequiresMembership(t *testing.T) {
	f := newCommentServiceFixture()
	f.members.addBoard(1, 10)
	f.cards.boards[5] = 1
	f.users.add(99, "otro")

	_, err := f.svc.Create(context.Background(), 99, models.CreateCommentRequest{CardID: 5, Content: "hola"})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, appErrors.FromError(err).Status)
}

func TestCommentServiceCreateMissingCard(t *testing.T) {
	f := newCommentServiceFixture()
	f.users.add(10, "ana")

	_, err := f.svc.Create(context.Background(), 10, models.CreateCommentRequest{CardID: 404, Content: "hola"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestCommentServiceUpdateAndDelete(t *testing.T) {
	f := newCommentServiceFixture()
	f.members.addBoard(1, 10)
	f.cards.boards[5] = 1
	f.users.add(10, "ana")

	comment, err := f.svc.Create(context.Background(), 10, models.CreateCommentRequest{CardID: 5, Content: "hola"})
	require.NoError(t, err)

	updated, err := f.svc.Update(context.Background(), 10, comment.ID, models.UpdateCommentRequest{Content: "editado"})
	require.NoError(t, err)
	assert.Equal(t, "editado", updated.Content)

	_, err = f.svc.Update(context.Background(), 99, comment.ID, models.UpdateCommentRequest{Content: "no"})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, appErrors.FromError(err).Status)

	require.NoError(t, f.svc.Delete(context.Background(), 10, comment.ID))
	_, err = f.svc.Get(context.Background(), 10, comment.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}
