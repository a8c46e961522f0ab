package database

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/SlpAus/reaction-records-backend/internal/platform/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB 初始化数据库连接，并把它赋值给全局的 DB
func InitDB(cfg config.DatabaseConfig) error {
	db, err := Open(cfg)
	if err != nil {
		return err
	}
	DB = db
	slog.Info("数据库连接成功", "driver", cfg.Driver)
	return nil
}

// Open 按配置的驱动打开一个新的gorm连接
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	gormCfg := &gorm.Config{
		Logger: newLogger,
		// 让驱动把唯一约束、外键约束错误翻译成 gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated
		TranslateError: true,
	}

	switch cfg.Driver {
	case config.DriverSqlite, "":
		db, err := gorm.Open(sqlite.Open(sqliteDSN(cfg.Sqlite.Path)), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("无法打开SQLite数据库 %s: %w", cfg.Sqlite.Path, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite只允许单写者
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	case config.DriverPostgres:
		db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("无法连接PostgreSQL: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)
	}
}

// sqliteDSN 在路径后追加开启外键约束的参数，级联删除依赖于它
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// Ping 检查数据库连接是否可用
func Ping(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("数据库尚未初始化")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CloseDB 关闭底层的数据库连接池
func CloseDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
