package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lemusAndy13/kanban-academico/pkg/config"
	"github.com/lemusAndy13/kanban-academico/pkg/response"
)

// CourseHandler serves the fixed default-course catalogue.
type CourseHandler struct {
	courses []config.Course
}

// NewCourseHandler constructs a course handler.
func NewCourseHandler(courses []config.Course) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List godoc
// @Summary List the default courses
// @Description Teacher-only fixed catalogue shipped with the server
// @Tags Courses
// @Produce json
// @Success 200 {array} config.Course
// @Failure 403 {object} response.ErrorBody
// @Router /default-courses/ [get]
func (h *CourseHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.courses)
}
