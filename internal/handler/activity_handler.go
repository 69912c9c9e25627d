package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	"github.com/lemusAndy13/kanban-academico/internal/service"
	"github.com/lemusAndy13/kanban-academico/pkg/response"
)

// ActivityHandler serves the read-only activity feed.
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler constructs an activity handler.
func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: svc}
}

// List godoc
// @Summary List activities on the caller's boards, newest first
// @Tags Activities
// @Produce json
// @Param board query int false "Filter by board"
// @Param card query int false "Filter by card"
// @Success 200 {array} models.Activity
// @Router /activities/ [get]
func (h *ActivityHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	filter := models.ActivityFilter{
		BoardID: int64Query(c, "board"),
		CardID:  int64Query(c, "card"),
	}
	activities, err := h.service.List(c.Request.Context(), claims.UserID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activities)
}
