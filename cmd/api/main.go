package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/lemusAndy13/kanban-academico/api/swagger"
	"github.com/lemusAndy13/kanban-academico/internal/handler"
	"github.com/lemusAndy13/kanban-academico/internal/middleware"
	"github.com/lemusAndy13/kanban-academico/internal/repository"
	"github.com/lemusAndy13/kanban-academico/internal/service"
	"github.com/lemusAndy13/kanban-academico/pkg/cache"
	"github.com/lemusAndy13/kanban-academico/pkg/config"
	"github.com/lemusAndy13/kanban-academico/pkg/database"
	"github.com/lemusAndy13/kanban-academico/pkg/logger"
	corsmiddleware "github.com/lemusAndy13/kanban-academico/pkg/middleware/cors"
	reqidmiddleware "github.com/lemusAndy13/kanban-academico/pkg/middleware/requestid"
)

// @title Kanban Académico API
// @version 1.0.0
// @description Kanban-style project management backend with role-based auth
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// The feed cache is optional; the API serves straight from postgres when
	// redis is absent.
	var cacheRepo *repository.CacheRepository
	if cfg.Activity.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, activity cache disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	listRepo := repository.NewListRepository(db)
	cardRepo := repository.NewCardRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	var cacheSvcRepo service.CacheRepository
	if cacheRepo != nil {
		cacheSvcRepo = cacheRepo
	}
	cacheSvc := service.NewCacheService(cacheSvcRepo, metricsSvc, cfg.Activity.CacheTTL, logr, cacheRepo != nil)

	access := service.NewAccess(boardRepo, userRepo)
	activitySvc := service.NewActivityService(activityRepo, cacheSvc, logr)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:        cfg.JWT.Secret,
		AccessExpiry:  cfg.JWT.Expiration,
		RefreshExpiry: cfg.JWT.RefreshExpiration,
		Issuer:        cfg.JWT.Issuer,
	})
	boardSvc := service.NewBoardService(boardRepo, userRepo, cardRepo, access, activitySvc, validate, logr)
	listSvc := service.NewListService(listRepo, access, validate, logr)
	cardSvc := service.NewCardService(cardRepo, listRepo, access, activitySvc, validate, logr)
	commentSvc := service.NewCommentService(commentRepo, cardRepo, userRepo, access, activitySvc, validate, logr)
	labelSvc := service.NewLabelService(labelRepo, access, validate, logr)
	checklistSvc := service.NewChecklistService(checklistRepo, cardRepo, access, validate, logr)
	attachmentSvc := service.NewAttachmentService(attachmentRepo, cardRepo, access, validate, logr)
	userSvc := service.NewUserService(userRepo, validate, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r, cfg.APIPrefix, handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Board:       handler.NewBoardHandler(boardSvc),
		List:        handler.NewListHandler(listSvc),
		Card:        handler.NewCardHandler(cardSvc),
		Comment:     handler.NewCommentHandler(commentSvc),
		Label:       handler.NewLabelHandler(labelSvc),
		Checklist:   handler.NewChecklistHandler(checklistSvc),
		Attachment:  handler.NewAttachmentHandler(attachmentSvc),
		Activity:    handler.NewActivityHandler(activitySvc),
		User:        handler.NewUserHandler(userSvc),
		Course:      handler.NewCourseHandler(cfg.Courses),
		AuthService: authSvc,
		Metrics:     metricsSvc,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
