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
	"golang.org/x/crypto/bcrypt"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
)

type mockAdminRepo struct {
	users     map[int64]*models.User
	roles     map[int64]models.Role
	passwords map[int64]string
	revoked   map[int64]bool
	nextID    int64
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{
		users:     make(map[int64]*models.User),
		roles:     make(map[int64]models.Role),
		passwords: make(map[int64]string),
		revoked:   make(map[int64]bool),
		nextID:    1,
	}
}

func (m *mockAdminRepo) addUser(username string, role models.Role) *models.User {
	user := &models.User{ID: m.nextID, Username: username}
	m.nextID++
	m.users[user.ID] = user
	m.roles[user.ID] = role
	return user
}

func (m *mockAdminRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAdminRepo) Create(ctx context.Context, user *models.User, role models.Role) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	m.roles[user.ID] = role
	m.passwords[user.ID] = user.PasswordHash
	return nil
}

func (m *mockAdminRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return sql.ErrNoRows
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockAdminRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if _, ok := m.users[id]; !ok {
		return sql.ErrNoRows
	}
	m.passwords[id] = passwordHash
	return nil
}

func (m *mockAdminRepo) SetRole(ctx context.Context, userID int64, role models.Role) error {
	m.roles[userID] = role
	return nil
}

func (m *mockAdminRepo) Delete(ctx context.Context, id int64) error {
	delete(m.users, id)
	return nil
}

func (m *mockAdminRepo) ListAdmin(ctx context.Context) ([]models.AdminUser, error) {
	var out []models.AdminUser
	for _, user := range m.users {
		admin := m.adminView(user)
		out = append(out, *admin)
	}
	return out, nil
}

func (m *mockAdminRepo) GetAdmin(ctx context.Context, id int64) (*models.AdminUser, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return m.adminView(user), nil
}

func (m *mockAdminRepo) RevokeUserRefreshTokens(ctx context.Context, userID int64) error {
	m.revoked[userID] = true
	return nil
}

func (m *mockAdminRepo) adminView(user *models.User) *models.AdminUser {
	return &models.AdminUser{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		Role:        m.roles[user.ID],
	}
}

func newTestUserService(repo *mockAdminRepo) *UserService {
	return NewUserService(repo, validator.New(), zap.NewNop())
}

func TestUserServiceCreateDefaultsRoleAndPassword(t *testing.T) {
	repo := newMockAdminRepo()
	svc := newTestUserService(repo)

	user, err := svc.Create(context.Background(), models.CreateAdminUserRequest{Username: "ana"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NotEmpty(t, repo.passwords[user.ID], "a password is generated when omitted")
}

func TestUserServiceCreateWithRoleAndDuplicate(t *testing.T) {
	repo := newMockAdminRepo()
	svc := newTestUserService(repo)

	role := models.RoleTeacher
	user, err := svc.Create(context.Background(), models.CreateAdminUserRequest{Username: "ana", Role: &role})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, user.Role)

	_, err = svc.Create(context.Background(), models.CreateAdminUserRequest{Username: "ana"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestUserServiceUpdateAppliesRole(t *testing.T) {
	repo := newMockAdminRepo()
	user := repo.addUser("ana", models.RoleStudent)
	svc := newTestUserService(repo)

	role := models.RoleTeacher
	updated, err := svc.Update(context.Background(), user.ID, models.UpdateAdminUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, updated.Role)
}

func TestUserServiceSetPassword(t *testing.T) {
	repo := newMockAdminRepo()
	user := repo.addUser("ana", models.RoleStudent)
	svc := newTestUserService(repo)

	require.NoError(t, svc.SetPassword(context.Background(), user.ID, models.SetPasswordRequest{Password: "nueva"}))
	require.NotEmpty(t, repo.passwords[user.ID])
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.passwords[user.ID]), []byte("nueva")))
	assert.True(t, repo.revoked[user.ID], "refresh tokens are revoked")
}

func TestUserServiceSetPasswordEmpty(t *testing.T) {
	repo := newMockAdminRepo()
	user := repo.addUser("ana", models.RoleStudent)
	svc := newTestUserService(repo)

	err := svc.SetPassword(context.Background(), user.ID, models.SetPasswordRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	assert.False(t, repo.revoked[user.ID])
}

func TestUserServiceDeleteMissing(t *testing.T) {
	repo := newMockAdminRepo()
	svc := newTestUserService(repo)

	err := svc.Delete(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}
