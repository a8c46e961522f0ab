package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/SlpAus/reaction-records-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RequestIDKey 是请求ID在gin上下文中的键
const RequestIDKey = "requestID"

// RequestIDHeader 是请求ID在HTTP头中的名字
const RequestIDHeader = "X-Request-ID"

// Setup 按配置创建日志记录器，并设为全局默认
func Setup(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FromContext 返回带有当前请求ID的日志记录器
func FromContext(c *gin.Context) *slog.Logger {
	if id := c.GetString(RequestIDKey); id != "" {
		return slog.Default().With(slog.String("request_id", id))
	}
	return slog.Default()
}
