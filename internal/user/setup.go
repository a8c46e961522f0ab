package user

import (
	"fmt"
	"log/slog"

	"github.com/SlpAus/reaction-records-backend/internal/platform/config"
	"github.com/SlpAus/reaction-records-backend/internal/platform/database"
	"golang.org/x/crypto/bcrypt"
)

var bcryptCost = bcrypt.DefaultCost

// ConfigureModule 应用user模块的配置
func ConfigureModule(cfg config.AuthConfig) {
	switch {
	case cfg.BcryptCost == 0:
		bcryptCost = bcrypt.DefaultCost
	case cfg.BcryptCost < bcrypt.MinCost:
		bcryptCost = bcrypt.MinCost
	case cfg.BcryptCost > bcrypt.MaxCost:
		bcryptCost = bcrypt.MaxCost
	default:
		bcryptCost = cfg.BcryptCost
	}
}

// PrimeDB 负责自动迁移数据库表结构
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("无法迁移users表: %w", err)
	}
	slog.Info("User数据库表迁移成功。")
	return nil
}

// WarmupCache 从数据库加载所有用户ID，并预热到Redis的Set中
// 注意：此函数不包含锁，调用方需要持有 LockRepository。
func WarmupCache() error {
	if database.RDB == nil {
		return nil
	}

	var ids []uint
	if err := database.DB.Model(&User{}).Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("无法从数据库读取用户ID: %w", err)
	}

	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}

	// 使用事务Pipeline，先清空旧的目录再一次性写入
	pipe := database.RDB.TxPipeline()
	pipe.Del(database.Ctx, KnownUsersKey)
	if len(members) > 0 {
		pipe.SAdd(database.Ctx, KnownUsersKey, members...)
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热用户ID到Redis失败: %w", err)
	}

	slog.Info("已知用户目录预热完成", "users", len(ids))
	return nil
}
