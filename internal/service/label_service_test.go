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

type mockLabelRepo struct {
	labels map[int64]*models.Label
	nextID int64
}

func newMockLabelRepo() *mockLabelRepo {
	return &mockLabelRepo{labels: make(map[int64]*models.Label), nextID: 1}
}

func (m *mockLabelRepo) addLabel(boardID *int64, name string) *models.Label {
	label := &models.Label{ID: m.nextID, BoardID: boardID, Name: name}
	m.nextID++
	m.labels[label.ID] = label
	return label
}

func (m *mockLabelRepo) ListForMember(ctx context.Context, userID int64, boardID *int64) ([]models.Label, error) {
	var out []models.Label
	for _, label := range m.labels {
		out = append(out, *label)
	}
	return out, nil
}

func (m *mockLabelRepo) FindByID(ctx context.Context, id int64) (*models.Label, error) {
	if label, ok := m.labels[id]; ok {
		copied := *label
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLabelRepo) Create(ctx context.Context, label *models.Label) error {
	label.ID = m.nextID
	m.nextID++
	m.labels[label.ID] = label
	return nil
}

func (m *mockLabelRepo) Update(ctx context.Context, label *models.Label) error {
	stored, ok := m.labels[label.ID]
	if !ok {
		return sql.ErrNoRows
	}
	*stored = *label
	return nil
}

func (m *mockLabelRepo) Delete(ctx context.Context, id int64) error {
	delete(m.labels, id)
	return nil
}

func newLabelServiceFixture() (*LabelService, *mockLabelRepo, *mockMembershipRepo) {
	members := newMockMembershipRepo()
	repo := newMockLabelRepo()
	access := NewAccess(members, &mockRoleRepo{})
	svc := NewLabelService(repo, access, validator.New(), zap.NewNop())
	return svc, repo, members
}

func TestLabelServiceCreateBoardScopedRequiresMembership(t *testing.T) {
	svc, _, members := newLabelServiceFixture()
	members.addBoard(1, 10)
	boardID := int64(1)

	label, err := svc.Create(context.Background(), 10, models.CreateLabelRequest{BoardID: &boardID, Name: "urgente", Color: "#f00"})
	require.NoError(t, err)
	assert.Equal(t, "urgente", label.Name)

	_, err = svc.Create(context.Background(), 99, models.CreateLabelRequest{BoardID: &boardID, Name: "otro"})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, appErrors.FromError(err).Status)
}

func TestLabelServiceGlobalLabelLifecycle(t *testing.T) {
	svc, _, _ := newLabelServiceFixture()

	// Anyone may create a global label.
	label, err := svc.Create(context.Background(), 99, models.CreateLabelRequest{Name: "general"})
	require.NoError(t, err)
	assert.Nil(t, label.BoardID)

	// Anyone may read it.
	got, err := svc.Get(context.Background(), 42, label.ID)
	require.NoError(t, err)
	assert.Equal(t, "general", got.Name)

	// Nobody may mutate it.
	name := "renombrado"
	_, err = svc.Update(context.Background(), 99, label.ID, models.UpdateLabelRequest{Name: &name})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, appErrors.FromError(err).Status)

	err = svc.Delete(context.Background(), 99, label.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, appErrors.FromError(err).Status)
}

func TestLabelServiceUpdateBoardLabel(t *testing.T) {
	svc, repo, members := newLabelServiceFixture()
	members.addBoard(1, 10)
	boardID := int64(1)
	label := repo.addLabel(&boardID, "urgente")

	color := "#0f0"
	updated, err := svc.Update(context.Background(), 10, label.ID, models.UpdateLabelRequest{Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "#0f0", updated.Color)

	require.NoError(t, svc.Delete(context.Background(), 10, label.ID))
	_, err = svc.Get(context.Background(), 10, label.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}
