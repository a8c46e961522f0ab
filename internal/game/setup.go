package game

import (
	"fmt"
	"log/slog"

	"github.com/SlpAus/reaction-records-backend/internal/platform/database"
)

// PrimeDB 负责自动迁移games表，必须在users表之后执行
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Game{}); err != nil {
		return fmt.Errorf("无法迁移games表: %w", err)
	}
	slog.Info("Game数据库表迁移成功。")
	return nil
}
