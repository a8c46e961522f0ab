package shutdown

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SlpAus/reaction-records-backend/internal/platform/database"
	"github.com/SlpAus/reaction-records-backend/pkg/lifecycle"
)

const (
	httpTimeout       = 15 * time.Second
	backgroundTimeout = 5 * time.Second
)

// Coordinator 负责编排应用程序的优雅停机流程。
type Coordinator struct {
	Manager *lifecycle.Manager
}

// NewCoordinator 创建一个新的停机协调器。
func NewCoordinator(manager *lifecycle.Manager) *Coordinator {
	return &Coordinator{Manager: manager}
}

// ListenForSignalsAndShutdown 阻塞直到收到停机信号，然后依次关闭HTTP服务器、后台服务和存储连接。
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	slog.Info("收到关闭信号，开始优雅停机...")
	c.Shutdown(server)
}

// Shutdown 执行停机流程本身，不等待信号
func (c *Coordinator) Shutdown(server *http.Server) {
	// 关闭HTTP服务器，允许正在进行的请求完成
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), httpTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP服务器关闭错误", "error", err)
	} else {
		slog.Info("HTTP服务器已关闭。")
	}

	c.Manager.Shutdown()
	if remaining := c.Manager.WaitWithTimeout(backgroundTimeout); len(remaining) > 0 {
		slog.Warn("部分后台服务未能按时退出", "services", remaining)
	}

	if err := database.CloseRedis(); err != nil {
		slog.Error("关闭Redis连接失败", "error", err)
	}
	if err := database.CloseDB(); err != nil {
		slog.Error("关闭数据库连接失败", "error", err)
	}

	slog.Info("优雅停机完成。")
}
