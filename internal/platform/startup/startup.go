package startup

import (
	"log/slog"

	"github.com/SlpAus/reaction-records-backend/internal/game"
	"github.com/SlpAus/reaction-records-backend/internal/user"
)

// InitializeApplication 是应用首次启动时执行的总入口
// 已知用户目录由第一次健康检查负责预热
func InitializeApplication() error {
	slog.Info("开始应用初始化...")

	// games 表的外键引用 users 表，顺序不能颠倒
	if err := user.PrimeDB(); err != nil {
		return err
	}
	if err := game.PrimeDB(); err != nil {
		return err
	}

	slog.Info("应用初始化完成！")
	return nil
}

// RebuildCache 在运行时重建Redis中的已知用户目录
func RebuildCache() error {
	user.LockRepository()
	defer user.UnlockRepository()
	return user.WarmupCache()
}
