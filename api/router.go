package api

import (
	"time"

	"github.com/SlpAus/reaction-records-backend/internal/platform/config"
	"github.com/SlpAus/reaction-records-backend/internal/platform/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter 创建带有全部中间件和路由的Gin引擎
func NewRouter(cfg config.ServerConfig) *gin.Engine {
	r := gin.New()
	r.Use(logging.RequestLogger(), logging.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Cors.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", logging.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", logging.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	SetupRoutes(r, cfg)
	return r
}
