package health

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/SlpAus/reaction-records-backend/internal/platform/database"
	"github.com/SlpAus/reaction-records-backend/internal/platform/startup"
	"github.com/SlpAus/reaction-records-backend/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

var runIDPattern = regexp.MustCompile(`run_id:([a-f0-9]+)`)

// fetchRunID 读取当前Redis实例的run_id，测试中可以替换
var fetchRunID = getRedisRunID

// getRedisRunID 从Redis服务器信息中提取run_id
func getRedisRunID(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	info, err := database.RDB.Info(ctx, "server").Result()
	if err != nil {
		return "", err
	}
	matches := runIDPattern.FindStringSubmatch(info)
	if len(matches) < 2 {
		return "", fmt.Errorf("无法在Redis INFO中找到run_id")
	}
	return matches[1], nil
}

// triggerAtomicRebuild 执行一次自校验的目录重建。
// 只有在重建期间Redis没有再次重启的情况下，才认为重建成功。
func triggerAtomicRebuild(ctx context.Context, idBeforeRebuild string) bool {
	slog.Info("健康检查: 正在重建已知用户目录...")
	if err := startup.RebuildCache(); err != nil {
		slog.Error("健康检查错误: 目录重建失败", "error", err)
		return false
	}

	idAfterRebuild, err := fetchRunID(ctx)
	if err != nil {
		slog.Error("健康检查错误: 重建后无法连接到Redis，重建无效", "error", err)
		return false
	}
	if idBeforeRebuild != idAfterRebuild {
		slog.Error("健康检查错误: 重建期间检测到Redis再次重启，重建无效",
			"run_id_before", idBeforeRebuild, "run_id_after", idAfterRebuild)
		return false
	}

	slog.Info("健康检查: 目录重建成功并通过原子性校验。")
	return true
}

// PerformCheck 执行一次完整的健康检查和可能的修复操作。
// 首次调用时已知run_id为空，因此会触发一次目录预热。
func PerformCheck(ctx context.Context) {
	if !database.IsRedisEnabled() {
		return
	}

	currentRunID, err := fetchRunID(ctx)
	if err != nil {
		database.UpdateStatus(false, "")
		return
	}

	if currentRunID == database.GetLastKnownRunID() {
		database.UpdateStatus(true, currentRunID)
		return
	}

	// Redis是新实例（或重启过），目录必须先重建才能使用
	database.UpdateStatus(false, "")
	if triggerAtomicRebuild(ctx, currentRunID) {
		database.UpdateStatus(true, currentRunID)
	}
}

// StartRedisHealthCheck 定期执行健康检查，直到生命周期句柄被取消。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()
	if !database.IsRedisEnabled() {
		return
	}
	slog.Info("Redis健康检查器已启动。")

	for {
		if err := handle.Sleep(checkInterval); err != nil {
			slog.Info("Redis健康检查器: 收到停机信号，正在退出。")
			return
		}
		PerformCheck(handle.Ctx())
	}
}
