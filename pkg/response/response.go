package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
)

// ErrorBody is the error contract: a human-readable detail plus the typed
// error for programmatic clients.
type ErrorBody struct {
	Detail string           `json:"detail"`
	Error  *appErrors.Error `json:"error"`
}

// JSON sends a success response with the payload as the body.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, ErrorBody{Detail: appErr.Message, Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
