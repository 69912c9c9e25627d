package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lemusAndy13/kanban-academico/internal/middleware"
	"github.com/lemusAndy13/kanban-academico/internal/models"
	"github.com/lemusAndy13/kanban-academico/internal/service"
)

type fakeUserRepo struct {
	users  map[string]*models.User
	roles  map[int64]models.Role
	tokens map[string]*models.RefreshToken
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]*models.User),
		roles:  make(map[int64]models.Role),
		tokens: make(map[string]*models.RefreshToken),
		nextID: 1,
	}
}

func (f *fakeUserRepo) seed(username, password string, role models.Role, staff bool) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &models.User{ID: f.nextID, Username: username, PasswordHash: string(hash), IsStaff: staff}
	f.nextID++
	f.users[username] = user
	f.roles[user.ID] = role
	return user
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) RoleOf(ctx context.Context, userID int64) (models.Role, error) {
	if role, ok := f.roles[userID]; ok {
		return role, nil
	}
	return models.RoleStudent, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User, role models.Role) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.Username] = user
	f.roles[user.ID] = role
	return nil
}

func (f *fakeUserRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeUserRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if rt, ok := f.tokens[token]; ok {
		return rt, nil
	}
	return nil, sql.ErrNoRows
}

func newAuthTestRouter(repo *fakeUserRepo) (*gin.Engine, *service.AuthService) {
	gin.SetMode(gin.TestMode)

	authSvc := service.NewAuthService(repo, validator.New(), zap.NewNop(), service.AuthConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "test",
	})
	h := NewAuthHandler(authSvc)

	r := gin.New()
	r.POST("/api/register/", h.Register)
	r.POST("/api/token/", h.Token)
	r.POST("/api/token/teacher/", h.TokenTeacher)
	r.POST("/api/token/refresh/", h.Refresh)

	authed := r.Group("/api", middleware.JWT(authSvc))
	authed.GET("/whoami/", func(c *gin.Context) {
		claims := c.MustGet(middleware.ContextUserKey).(*models.JWTClaims)
		c.JSON(http.StatusOK, gin.H{"username": claims.Username, "role": claims.Role})
	})
	return r, authSvc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthEndpointsRegisterAndToken(t *testing.T) {
	repo := newFakeUserRepo()
	r, _ := newAuthTestRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/register/", gin.H{"username": "ana", "password": "secret"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.UserPublic
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "ana", created.Username)

	w = doJSON(t, r, http.MethodPost, "/api/token/", gin.H{"username": "ana", "password": "secret"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tokens models.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokens))
	assert.NotEmpty(t, tokens.Access)
	assert.NotEmpty(t, tokens.Refresh)
	assert.Equal(t, models.RoleStudent, tokens.Role)

	w = doJSON(t, r, http.MethodPost, "/api/token/refresh/", gin.H{"refresh": tokens.Refresh}, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthEndpointsTokenRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	repo.seed("ana", "secret", models.RoleStudent, false)
	r, _ := newAuthTestRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/token/", gin.H{"username": "ana", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthEndpointsTeacherTokenRestricted(t *testing.T) {
	repo := newFakeUserRepo()
	repo.seed("ana", "secret", models.RoleStudent, false)
	r, _ := newAuthTestRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/token/teacher/", gin.H{"username": "ana", "password": "secret"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJWTMiddlewareGuardsRoutes(t *testing.T) {
	repo := newFakeUserRepo()
	repo.seed("ana", "secret", models.RoleTeacher, false)
	r, _ := newAuthTestRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/api/whoami/", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tokenRes := doJSON(t, r, http.MethodPost, "/api/token/", gin.H{"username": "ana", "password": "secret"}, nil)
	require.Equal(t, http.StatusOK, tokenRes.Code)
	var tokens models.TokenResponse
	require.NoError(t, json.Unmarshal(tokenRes.Body.Bytes(), &tokens))

	w = doJSON(t, r, http.MethodGet, "/api/whoami/", nil, map[string]string{"Authorization": "Bearer " + tokens.Access})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana")
}
