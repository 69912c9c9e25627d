package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	"github.com/lemusAndy13/kanban-academico/internal/service"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
	"github.com/lemusAndy13/kanban-academico/pkg/response"
)

// ListHandler handles board list endpoints.
type ListHandler struct {
	service *service.ListService
}

// NewListHandler constructs a list handler.
func NewListHandler(svc *service.ListService) *ListHandler {
	return &ListHandler{service: svc}
}

// List godoc
// @Summary List the lists on the caller's boards
// @Tags Lists
// @Produce json
// @Param board query int false "Filter by board"
// @Success 200 {array} models.List
// @Router /lists/ [get]
func (h *ListHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	lists, err := h.service.List(c.Request.Context(), claims.UserID, int64Query(c, "board"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lists)
}

// Get godoc
// @Summary Get a list
// @Tags Lists
// @Produce json
// @Param id path int true "List ID"
// @Success 200 {object} models.List
// @Router /lists/{id}/ [get]
func (h *ListHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "list not found"))
		return
	}
	list, err := h.service.Get(c.Request.Context(), claims.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Create godoc
// @Summary Create a list
// @Tags Lists
// @Accept json
// @Produce json
// @Param payload body models.CreateListRequest true "List payload"
// @Success 201 {object} models.List
// @Router /lists/ [post]
func (h *ListHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	var req models.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	list, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, list)
}

// Update godoc
// @Summary Update a list
// @Tags Lists
// @Accept json
// @Produce json
// @Param id path int true "List ID"
// @Param payload body models.UpdateListRequest true "List payload"
// @Success 200 {object} models.List
// @Router /lists/{id}/ [put]
func (h *ListHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "list not found"))
		return
	}
	var req models.UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	list, err := h.service.Update(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Delete godoc
// @Summary Delete a list
// @Tags Lists
// @Param id path int true "List ID"
// @Success 204
// @Router /lists/{id}/ [delete]
func (h *ListHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "list not found"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
