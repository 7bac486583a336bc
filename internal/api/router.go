package api

import (
	"noticeboard/config"
	"noticeboard/internal/api/admin"
	"noticeboard/internal/api/handler"
	"noticeboard/internal/middleware"
	"noticeboard/internal/repository"
	"noticeboard/internal/service"
	"noticeboard/pkg/async"
	"noticeboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// SetupRouter 设置API路由
func SetupRouter(cfg *config.Config, logger *logger.Logger, db *sqlx.DB, redisClient *redis.Client, worker *async.Worker) *gin.Engine {
	// 创建Gin引擎
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 使用中间件
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// 初始化存储库
	announcementRepo := repository.NewAnnouncementRepository(db)

	// 初始化服务
	announcementService := service.NewAnnouncementService(announcementRepo, redisClient, worker, logger)
	authService := service.NewAuthService(cfg.Admin, redisClient, logger)

	// 初始化处理器
	announcementHandler := handler.NewAnnouncementHandler(announcementService, logger)
	authHandler := handler.NewAuthHandler(authService, logger)
	announcementAdminHandler := admin.NewAnnouncementAdminHandler(announcementService, logger)

	// 公开接口
	v1 := router.Group("/api/v1")
	{
		v1.GET("/announcements", announcementHandler.GetAnnouncements)
		v1.POST("/admin/login", authHandler.Login)
	}

	// 管理接口，需要管理员Token
	adminGroup := v1.Group("/admin")
	adminGroup.Use(middleware.AdminAuth(authService))
	{
		adminGroup.POST("/announcements", announcementAdminHandler.CreateAnnouncement)
		adminGroup.PUT("/announcements/:id", announcementAdminHandler.UpdateAnnouncement)
		adminGroup.DELETE("/announcements/:id", announcementAdminHandler.DeleteAnnouncement)
	}

	return router
}
