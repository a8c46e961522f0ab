package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/SlpAus/reaction-records-backend/internal/platform/config"
	"github.com/SlpAus/reaction-records-backend/internal/platform/database"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var nameReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_", "&", "_")

// SetupDB 为当前测试打开一个独立的内存SQLite数据库，并临时替换 database.DB。
// 表结构由调用方自行迁移。
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := fmt.Sprintf("file:%s?mode=memory&cache=shared", nameReplacer.Replace(t.Name()))
	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSqlite,
		Sqlite: config.SqliteConfig{Path: path},
	})
	require.NoError(t, err)

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		database.DB = prev
	})
	return db
}

// SetupRedis 启动一个miniredis实例并临时替换 database.RDB。
// 返回时Redis状态为不健康，测试需要自行预热目录并调用 MarkRedisHealthy。
func SetupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	prev := database.RDB
	database.RDB = client
	database.ResetStatus()
	t.Cleanup(func() {
		_ = client.Close()
		database.RDB = prev
		database.ResetStatus()
	})
	return mini
}

// MarkRedisHealthy 把Redis标记为可用，效果等同于一次成功的健康检查
func MarkRedisHealthy() {
	database.UpdateStatus(true, "test-run-id")
}
