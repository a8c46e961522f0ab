package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SlpAus/reaction-records-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// RDB 是一个全局的Redis客户端实例，未启用Redis时为nil
var RDB *redis.Client

// Ctx 是一个全局的上下文，用于与请求无关的Redis操作
var Ctx = context.Background()

// InitRedis 初始化与Redis数据库的连接
// 连接失败不会终止程序：Redis只是加速层，健康检查器会在它恢复后接管
func InitRedis(cfg config.RedisConfig) error {
	if !cfg.Enabled {
		slog.Info("Redis未启用，已知用户目录将直接查询数据库")
		return nil
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		return fmt.Errorf("无法连接到Redis %s: %w", cfg.Address, err)
	}

	slog.Info("Redis 连接成功", "address", cfg.Address)
	return nil
}

// IsRedisEnabled 报告是否配置了Redis
func IsRedisEnabled() bool {
	return RDB != nil
}

// CloseRedis 关闭Redis客户端
func CloseRedis() error {
	if RDB == nil {
		return nil
	}
	return RDB.Close()
}
