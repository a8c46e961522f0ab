package cli

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/SlpAus/reaction-records-backend/internal/platform/config"
	"github.com/SlpAus/reaction-records-backend/internal/platform/database"
	"github.com/SlpAus/reaction-records-backend/internal/platform/health"
	"github.com/SlpAus/reaction-records-backend/internal/platform/logging"
	"github.com/SlpAus/reaction-records-backend/internal/platform/startup"
	"github.com/SlpAus/reaction-records-backend/internal/user"
	"github.com/spf13/cobra"
)

// NewRootCmd 创建管理命令的根命令
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "recordsctl",
		Short: "Management commands for the game records backend",
		Long: `recordsctl operates directly on the configured database.

It reads the same config.yaml as the server and can create or delete users
and seed demo records.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return connect(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = database.CloseRedis()
			_ = database.CloseDB()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newCreateUserCmd())
	rootCmd.AddCommand(newDeleteUserCmd())
	rootCmd.AddCommand(newSeedCmd())

	return rootCmd
}

// Execute 运行根命令
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// connect 加载配置并打开存储，与服务器启动时的顺序一致
func connect(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logging.Setup(config.LogConfig{Level: "warn", Format: cfg.Log.Format})
	user.ConfigureModule(cfg.Auth)

	if err := database.InitDB(cfg.Database); err != nil {
		return err
	}
	if err := database.InitRedis(cfg.Database.Redis); err != nil {
		slog.Warn("Redis不可用，已知用户目录不会被更新", "error", err)
	}
	if err := startup.InitializeApplication(); err != nil {
		return err
	}
	health.PerformCheck(ctx)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
