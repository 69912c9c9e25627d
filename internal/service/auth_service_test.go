package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
)

type mockAuthRepo struct {
	users    map[string]*models.User
	roles    map[int64]models.Role
	tokens   map[string]*models.RefreshToken
	nextID   int64
	createds []*models.User
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{
		users:  make(map[string]*models.User),
		roles:  make(map[int64]models.Role),
		tokens: make(map[string]*models.RefreshToken),
		nextID: 1,
	}
}

func (m *mockAuthRepo) addUser(username, password string, role models.Role) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &models.User{ID: m.nextID, Username: username, PasswordHash: string(hash)}
	m.nextID++
	m.users[username] = user
	m.roles[user.ID] = role
	return user
}

func (m *mockAuthRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := m.users[username]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) RoleOf(ctx context.Context, userID int64) (models.Role, error) {
	if role, ok := m.roles[userID]; ok {
		return role, nil
	}
	return models.RoleStudent, nil
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User, role models.Role) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = user
	m.roles[user.ID] = role
	m.createds = append(m.createds, user)
	return nil
}

func (m *mockAuthRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockAuthRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if rt, ok := m.tokens[token]; ok {
		return rt, nil
	}
	return nil, sql.ErrNoRows
}

func newTestAuthService(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "test",
	})
}

func TestAuthServiceRegister(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), models.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "ana", user.Username)
	require.Len(t, repo.createds, 1)
	assert.NotEqual(t, "secret", repo.createds[0].PasswordHash)
}

func TestAuthServiceRegisterDuplicateUsername(t *testing.T) {
	repo := newMockAuthRepo()
	repo.addUser("ana", "secret", models.RoleStudent)
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "ana", Password: "other"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestAuthServiceTokenReturnsPairAndMetadata(t *testing.T) {
	repo := newMockAuthRepo()
	repo.addUser("ana", "secret", models.RoleTeacher)
	svc := newTestAuthService(repo)

	res, err := svc.Token(context.Background(), models.TokenRequest{Username: "ana", Password: "secret"}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Access)
	assert.NotEmpty(t, res.Refresh)
	assert.Equal(t, models.RoleTeacher, res.Role)
	assert.Equal(t, "ana", res.Username)

	claims, err := svc.ValidateToken(res.Access)
	require.NoError(t, err)
	assert.Equal(t, res.UserID, claims.UserID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
}

func TestAuthServiceTokenWrongPassword(t *testing.T) {
	repo := newMockAuthRepo()
	repo.addUser("ana", "secret", models.RoleStudent)
	svc := newTestAuthService(repo)

	_, err := svc.Token(context.Background(), models.TokenRequest{Username: "ana", Password: "wrong"}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}

func TestAuthServiceTokenRoleMismatch(t *testing.T) {
	repo := newMockAuthRepo()
	repo.addUser("ana", "secret", models.RoleTeacher)
	svc := newTestAuthService(repo)

	student := models.RoleStudent
	_, err := svc.Token(context.Background(), models.TokenRequest{Username: "ana", Password: "secret"}, &student)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)

	teacher := models.RoleTeacher
	res, err := svc.Token(context.Background(), models.TokenRequest{Username: "ana", Password: "secret"}, &teacher)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, res.Role)
}

func TestAuthServiceRefresh(t *testing.T) {
	repo := newMockAuthRepo()
	repo.addUser("ana", "secret", models.RoleStudent)
	svc := newTestAuthService(repo)

	res, err := svc.Token(context.Background(), models.TokenRequest{Username: "ana", Password: "secret"}, nil)
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), models.TokenRefreshRequest{Refresh: res.Refresh})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Access)
}

func TestAuthServiceRefreshExpired(t *testing.T) {
	repo := newMockAuthRepo()
	user := repo.addUser("ana", "secret", models.RoleStudent)
	repo.tokens["stale"] = &models.RefreshToken{ID: "rt", UserID: user.ID, Token: "stale", ExpiresAt: time.Now().Add(-time.Hour)}
	svc := newTestAuthService(repo)

	_, err := svc.Refresh(context.Background(), models.TokenRefreshRequest{Refresh: "stale"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}
