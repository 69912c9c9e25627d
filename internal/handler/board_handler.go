package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	"github.com/lemusAndy13/kanban-academico/internal/service"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
	"github.com/lemusAndy13/kanban-academico/pkg/response"
)

// BoardHandler handles board endpoints.
type BoardHandler struct {
	service *service.BoardService
}

// NewBoardHandler constructs a board handler.
func NewBoardHandler(svc *service.BoardService) *BoardHandler {
	return &BoardHandler{service: svc}
}

// List godoc
// @Summary List the caller's boards
// @Tags Boards
// @Produce json
// @Success 200 {array} models.Board
// @Router /boards/ [get]
func (h *BoardHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	boards, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, boards)
}

// Get godoc
// @Summary Get a board
// @Tags Boards
// @Produce json
// @Param id path int true "Board ID"
// @Success 200 {object} models.Board
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /boards/{id}/ [get]
func (h *BoardHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "board not found"))
		return
	}
	board, err := h.service.Get(c.Request.Context(), claims.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board)
}

// Create godoc
// @Summary Create a board
// @Tags Boards
// @Accept json
// @Produce json
// @Param payload body models.CreateBoardRequest true "Board payload"
// @Success 201 {object} models.Board
// @Failure 400 {object} response.ErrorBody
// @Router /boards/ [post]
func (h *BoardHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	var req models.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	board, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, board)
}

// Update godoc
// @Summary Update a board
// @Tags Boards
// @Accept json
// @Produce json
// @Param id path int true "Board ID"
// @Param payload body models.UpdateBoardRequest true "Board payload"
// @Success 200 {object} models.Board
// @Router /boards/{id}/ [put]
func (h *BoardHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "board not found"))
		return
	}
	var req models.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	board, err := h.service.Update(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board)
}

// Delete godoc
// @Summary Delete a board
// @Description Allowed for the owner or any teacher
// @Tags Boards
// @Param id path int true "Board ID"
// @Success 204
// @Failure 403 {object} response.ErrorBody
// @Router /boards/{id}/ [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "board not found"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Invite godoc
// @Summary Invite a user to a board
// @Tags Boards
// @Accept json
// @Produce json
// @Param id path int true "Board ID"
// @Param payload body models.InviteRequest true "Invite payload"
// @Success 200 {object} map[string]string
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /boards/{id}/invite/ [post]
func (h *BoardHandler) Invite(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "board not found"))
		return
	}
	var req models.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.Invite(c.Request.Context(), claims.UserID, id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"detail": "user invited"})
}

// Members godoc
// @Summary List board members
// @Tags Boards
// @Produce json
// @Param id path int true "Board ID"
// @Success 200 {array} models.UserPublic
// @Router /boards/{id}/members/ [get]
func (h *BoardHandler) Members(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "board not found"))
		return
	}
	members, err := h.service.Members(c.Request.Context(), claims.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, members)
}

// Export godoc
// @Summary Export the board's cards
// @Tags Boards
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Board ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /boards/{id}/export/ [get]
func (h *BoardHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "board not found"))
		return
	}
	result, err := h.service.Export(c.Request.Context(), claims.UserID, id, service.ExportFormat(c.DefaultQuery("format", "csv")))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
