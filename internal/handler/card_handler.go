package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	"github.com/lemusAndy13/kanban-academico/internal/service"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
	"github.com/lemusAndy13/kanban-academico/pkg/response"
)

// CardHandler handles card endpoints.
type CardHandler struct {
	service *service.CardService
}

// NewCardHandler constructs a card handler.
func NewCardHandler(svc *service.CardService) *CardHandler {
	return &CardHandler{service: svc}
}

// List godoc
// @Summary List the cards visible to the caller
// @Tags Cards
// @Produce json
// @Param label query int false "Filter by label id"
// @Param assignee query int false "Filter by assignee id"
// @Param due_before query string false "Inclusive upper due date bound"
// @Param due_after query string false "Inclusive lower due date bound"
// @Param search query string false "Substring match over title or description"
// @Success 200 {array} models.Card
// @Router /cards/ [get]
func (h *CardHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	filter := models.CardFilter{
		Label:     int64Query(c, "label"),
		Assignee:  int64Query(c, "assignee"),
		DueBefore: timeQuery(c, "due_before"),
		DueAfter:  timeQuery(c, "due_after"),
		Search:    strings.TrimSpace(c.Query("search")),
	}
	cards, err := h.service.List(c.Request.Context(), claims.UserID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cards)
}

// Get godoc
// @Summary Get a card
// @Tags Cards
// @Produce json
// @Param id path int true "Card ID"
// @Success 200 {object} models.Card
// @Router /cards/{id}/ [get]
func (h *CardHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "card not found"))
		return
	}
	card, err := h.service.Get(c.Request.Context(), claims.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, card)
}

// Create godoc
// @Summary Create a card
// @Tags Cards
// @Accept json
// @Produce json
// @Param payload body models.CreateCardRequest true "Card payload"
// @Success 201 {object} models.Card
// @Failure 400 {object} response.ErrorBody
// @Router /cards/ [post]
func (h *CardHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	var req models.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	card, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, card)
}

// Update godoc
// @Summary Update a card
// @Tags Cards
// @Accept json
// @Produce json
// @Param id path int true "Card ID"
// @Param payload body models.UpdateCardRequest true "Card payload"
// @Success 200 {object} models.Card
// @Router /cards/{id}/ [put]
func (h *CardHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "card not found"))
		return
	}
	var req models.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	card, err := h.service.Update(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, card)
}

// Delete godoc
// @Summary Delete a card
// @Tags Cards
// @Param id path int true "Card ID"
// @Success 204
// @Router /cards/{id}/ [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "card not found"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Move godoc
// @Summary Move a card to a list position
// @Description Reassigns the card's list and rewrites sibling positions into a dense sequence
// @Tags Cards
// @Accept json
// @Produce json
// @Param id path int true "Card ID"
// @Param payload body models.MoveCardRequest true "Move payload"
// @Success 200 {object} models.Card
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /cards/{id}/move/ [patch]
func (h *CardHandler) Move(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "card not found"))
		return
	}
	var req models.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "list and position must be integers"))
		return
	}
	card, err := h.service.Move(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, card)
}
