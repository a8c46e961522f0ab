package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/SlpAus/reaction-records-backend/api"
	"github.com/SlpAus/reaction-records-backend/internal/platform/config"
	"github.com/SlpAus/reaction-records-backend/internal/platform/database"
	"github.com/SlpAus/reaction-records-backend/internal/platform/health"
	"github.com/SlpAus/reaction-records-backend/internal/platform/logging"
	"github.com/SlpAus/reaction-records-backend/internal/platform/shutdown"
	"github.com/SlpAus/reaction-records-backend/internal/platform/startup"
	"github.com/SlpAus/reaction-records-backend/internal/user"
	"github.com/SlpAus/reaction-records-backend/pkg/lifecycle"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("加载配置失败", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log)
	gin.SetMode(cfg.Server.Mode)
	user.ConfigureModule(cfg.Auth)

	// 1. 初始化数据库和Redis
	if err := database.InitDB(cfg.Database); err != nil {
		slog.Error("连接数据库失败", "error", err)
		os.Exit(1)
	}
	if err := database.InitRedis(cfg.Database.Redis); err != nil {
		slog.Warn("Redis暂不可用，将在恢复后自动启用", "error", err)
	}

	// 2. 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(); err != nil {
		slog.Error("应用初始化失败，无法启动", "error", err)
		os.Exit(1)
	}

	// 3. 阻塞式执行一次健康检查，顺带预热已知用户目录
	health.PerformCheck(context.Background())

	// 4. 启动后台的持续健康检查器
	manager := lifecycle.NewManager()
	handle, err := manager.NewServiceHandle("redis-health-check")
	if err != nil {
		slog.Error("无法注册后台服务", "error", err)
		os.Exit(1)
	}
	go health.StartRedisHealthCheck(handle)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: api.NewRouter(cfg.Server),
	}

	go func() {
		slog.Info("服务器已准备就绪，开始监听", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("服务器启动失败", "error", err)
			os.Exit(1)
		}
	}()

	shutdown.NewCoordinator(manager).ListenForSignalsAndShutdown(server)
}
