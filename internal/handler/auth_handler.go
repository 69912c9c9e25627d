package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	"github.com/lemusAndy13/kanban-academico/internal/service"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
	"github.com/lemusAndy13/kanban-academico/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Register godoc
// @Summary Register a new account
// @Description Creates a user with a default student profile
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Register payload"
// @Success 201 {object} models.UserPublic
// @Failure 400 {object} response.ErrorBody
// @Router /register/ [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid register payload"))
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, user)
}

// Token godoc
// @Summary Obtain a token pair
// @Description Authenticates by username and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.TokenRequest true "Credentials"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /token/ [post]
func (h *AuthHandler) Token(c *gin.Context) {
	h.token(c, nil)
}

// TokenStudent godoc
// @Summary Obtain a token pair for a student account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.TokenRequest true "Credentials"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /token/student/ [post]
func (h *AuthHandler) TokenStudent(c *gin.Context) {
	role := models.RoleStudent
	h.token(c, &role)
}

// TokenTeacher godoc
// @Summary Obtain a token pair for a teacher account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.TokenRequest true "Credentials"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /token/teacher/ [post]
func (h *AuthHandler) TokenTeacher(c *gin.Context) {
	role := models.RoleTeacher
	h.token(c, &role)
}

// Refresh godoc
// @Summary Refresh the access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.TokenRefreshRequest true "Refresh payload"
// @Success 200 {object} models.TokenRefreshResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /token/refresh/ [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.TokenRefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid refresh payload"))
		return
	}

	res, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

func (h *AuthHandler) token(c *gin.Context, expectedRole *models.Role) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid token payload"))
		return
	}

	res, err := h.service.Token(c.Request.Context(), req, expectedRole)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}
