package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lemusAndy13/kanban-academico/internal/middleware"
	"github.com/lemusAndy13/kanban-academico/internal/models"
	"github.com/lemusAndy13/kanban-academico/internal/service"
)

// Handlers bundles every HTTP handler plus the services route registration
// needs directly.
type Handlers struct {
	Auth       *AuthHandler
	Board      *BoardHandler
	List       *ListHandler
	Card       *CardHandler
	Comment    *CommentHandler
	Label      *LabelHandler
	Checklist  *ChecklistHandler
	Attachment *AttachmentHandler
	Activity   *ActivityHandler
	User       *UserHandler
	Course     *CourseHandler

	AuthService *service.AuthService
	Metrics     *service.MetricsService
}

// Register mounts every route under the given prefix. Paths keep a trailing
// slash to match the public API contract.
func Register(r *gin.Engine, prefix string, h Handlers) {
	api := r.Group(prefix)

	api.POST("/register/", h.Auth.Register)
	api.POST("/token/", h.Auth.Token)
	api.POST("/token/student/", h.Auth.TokenStudent)
	api.POST("/token/teacher/", h.Auth.TokenTeacher)
	api.POST("/token/refresh/", h.Auth.Refresh)

	authed := api.Group("", middleware.JWT(h.AuthService))

	authed.GET("/default-courses/", middleware.RequireRole(models.RoleTeacher), h.Course.List)

	boards := authed.Group("/boards")
	boards.GET("/", h.Board.List)
	boards.POST("/", h.Board.Create)
	boards.GET("/:id/", h.Board.Get)
	boards.PUT("/:id/", h.Board.Update)
	boards.PATCH("/:id/", h.Board.Update)
	boards.DELETE("/:id/", h.Board.Delete)
	boards.POST("/:id/invite/", h.Board.Invite)
	boards.GET("/:id/members/", h.Board.Members)
	boards.GET("/:id/export/", h.Board.Export)

	lists := authed.Group("/lists")
	lists.GET("/", h.List.List)
	lists.POST("/", h.List.Create)
	lists.GET("/:id/", h.List.Get)
	lists.PUT("/:id/", h.List.Update)
	lists.PATCH("/:id/", h.List.Update)
	lists.DELETE("/:id/", h.List.Delete)

	cards := authed.Group("/cards")
	cards.GET("/", h.Card.List)
	cards.POST("/", h.Card.Create)
	cards.GET("/:id/", h.Card.Get)
	cards.PUT("/:id/", h.Card.Update)
	cards.PATCH("/:id/", h.Card.Update)
	cards.DELETE("/:id/", h.Card.Delete)
	cards.PATCH("/:id/move/", h.Card.Move)

	comments := authed.Group("/comments")
	comments.GET("/", h.Comment.List)
	comments.POST("/", h.Comment.Create)
	comments.GET("/:id/", h.Comment.Get)
	comments.PUT("/:id/", h.Comment.Update)
	comments.PATCH("/:id/", h.Comment.Update)
	comments.DELETE("/:id/", h.Comment.Delete)

	labels := authed.Group("/labels")
	labels.GET("/", h.Label.List)
	labels.POST("/", h.Label.Create)
	labels.GET("/:id/", h.Label.Get)
	labels.PUT("/:id/", h.Label.Update)
	labels.PATCH("/:id/", h.Label.Update)
	labels.DELETE("/:id/", h.Label.Delete)

	checklist := authed.Group("/checklist")
	checklist.GET("/", h.Checklist.List)
	checklist.POST("/", h.Checklist.Create)
	checklist.GET("/:id/", h.Checklist.Get)
	checklist.PUT("/:id/", h.Checklist.Update)
	checklist.PATCH("/:id/", h.Checklist.Update)
	checklist.DELETE("/:id/", h.Checklist.Delete)

	attachments := authed.Group("/attachments")
	attachments.GET("/", h.Attachment.List)
	attachments.POST("/", h.Attachment.Create)
	attachments.GET("/:id/", h.Attachment.Get)
	attachments.PUT("/:id/", h.Attachment.Update)
	attachments.PATCH("/:id/", h.Attachment.Update)
	attachments.DELETE("/:id/", h.Attachment.Delete)

	authed.GET("/activities/", h.Activity.List)

	admin := authed.Group("/admin/users", middleware.RequireStaff())
	admin.GET("/", h.User.List)
	admin.POST("/", h.User.Create)
	admin.GET("/:id/", h.User.Get)
	admin.PUT("/:id/", h.User.Update)
	admin.PATCH("/:id/", h.User.Update)
	admin.DELETE("/:id/", h.User.Delete)
	admin.POST("/:id/set_password/", h.User.SetPassword)
}
