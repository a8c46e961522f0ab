package api

import (
	"fmt"
	"net/http"

	"github.com/SlpAus/reaction-records-backend/internal/game"
	"github.com/SlpAus/reaction-records-backend/internal/platform/config"
	"github.com/SlpAus/reaction-records-backend/internal/platform/health"
	"github.com/SlpAus/reaction-records-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine, cfg config.ServerConfig) {
	// 已知路径上的错误方法返回405，而不是404
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": fmt.Sprintf("Method \"%s\" not allowed.", c.Request.Method)})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	})

	api := router.Group(cfg.BasePath)
	{
		// 用户相关的路由
		api.GET("/users/", user.ListUsers)
		api.POST("/users/create/", user.CreateUser)

		// 游戏记录相关的路由
		api.GET("/games/", game.ListGames)
		api.POST("/games/create/", game.CreateGame)

		api.GET("/health", health.GetHealth)
	}
}
