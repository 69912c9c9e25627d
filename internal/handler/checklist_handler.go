package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	"github.com/lemusAndy13/kanban-academico/internal/service"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
	"github.com/lemusAndy13/kanban-academico/pkg/response"
)

// ChecklistHandler handles checklist item endpoints.
type ChecklistHandler struct {
	service *service.ChecklistService
}

// NewChecklistHandler constructs a checklist handler.
func NewChecklistHandler(svc *service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{service: svc}
}

// List godoc
// @Summary List checklist items on the caller's boards
// @Tags Checklist
// @Produce json
// @Param card query int false "Filter by card"
// @Success 200 {array} models.ChecklistItem
// @Router /checklist/ [get]
func (h *ChecklistHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	items, err := h.service.List(c.Request.Context(), claims.UserID, int64Query(c, "card"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Get godoc
// @Summary Get a checklist item
// @Tags Checklist
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} models.ChecklistItem
// @Router /checklist/{id}/ [get]
func (h *ChecklistHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "checklist item not found"))
		return
	}
	item, err := h.service.Get(c.Request.Context(), claims.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create a checklist item
// @Tags Checklist
// @Accept json
// @Produce json
// @Param payload body models.CreateChecklistItemRequest true "Item payload"
// @Success 201 {object} models.ChecklistItem
// @Router /checklist/ [post]
func (h *ChecklistHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	var req models.CreateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update a checklist item
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param payload body models.UpdateChecklistItemRequest true "Item payload"
// @Success 200 {object} models.ChecklistItem
// @Router /checklist/{id}/ [put]
func (h *ChecklistHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "checklist item not found"))
		return
	}
	var req models.UpdateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a checklist item
// @Tags Checklist
// @Param id path int true "Item ID"
// @Success 204
// @Router /checklist/{id}/ [delete]
func (h *ChecklistHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "checklist item not found"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
