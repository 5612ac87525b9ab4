package router

import (
	"time"

	"fasting-tracker/internal/config"
	"fasting-tracker/internal/fasting"
	"fasting-tracker/internal/handler"
	"fasting-tracker/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// 前端是独立的 SPA，跨域放开
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	// ====== API ======
	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// 登录/注册接口（不需要鉴权）
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// 需要登录才能访问的接口
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)

	fastingHandler := handler.NewFastingHandler(fasting.NewService(db), cfg.App)
	protected.GET("/fasting/active", fastingHandler.GetActive)
	protected.POST("/fasting/start", fastingHandler.Start)
	protected.PUT("/fasting/end", fastingHandler.End)
	protected.PUT("/fasting/cancel", fastingHandler.Cancel)
	protected.GET("/fasting/history", fastingHandler.History)
	protected.GET("/fasting/stats", fastingHandler.Stats)
	protected.GET("/fasting/calendar", fastingHandler.Calendar)
	protected.GET("/fasting/protocols", fastingHandler.Protocols)

	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db))

	logHandler := handler.NewLogHandler(db)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
