package user

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SlpAus/reaction-records-backend/internal/platform/database"
)

// --- 并发控制 ---

// repoMutex 保护已知用户目录：单个成员的增删持读锁，整体重建持写锁，
// 这样重建期间从数据库读出的快照不会覆盖掉并发写入的成员。
var repoMutex sync.RWMutex

// LockRepository 封装了对模块全局锁的写锁定操作。
func LockRepository() {
	repoMutex.Lock()
}

// UnlockRepository 封装了对模块全局锁的写解锁操作。
func UnlockRepository() {
	repoMutex.Unlock()
}

// rememberUser 把新用户加入已知用户目录。失败只记日志：目录未命中时会回退到数据库。
func rememberUser(ctx context.Context, id uint) {
	if !database.IsRedisHealthy() {
		return
	}
	repoMutex.RLock()
	defer repoMutex.RUnlock()
	if err := database.RDB.SAdd(ctx, KnownUsersKey, id).Err(); err != nil {
		slog.Warn("无法将新用户加入Redis目录", "user_id", id, "error", err)
	}
}

// forgetUser 把已删除的用户移出已知用户目录。
func forgetUser(ctx context.Context, id uint) {
	if !database.IsRedisHealthy() {
		return
	}
	repoMutex.RLock()
	defer repoMutex.RUnlock()
	if err := database.RDB.SRem(ctx, KnownUsersKey, id).Err(); err != nil {
		slog.Warn("无法将用户移出Redis目录", "user_id", id, "error", err)
	}
}

// isKnownUser 只查询Redis目录，目录不可用或未命中时返回false。
func isKnownUser(ctx context.Context, id int64) bool {
	if !database.IsRedisHealthy() {
		return false
	}
	known, err := database.RDB.SIsMember(ctx, KnownUsersKey, id).Result()
	if err != nil {
		slog.Warn("查询Redis用户目录失败，回退到数据库", "user_id", id, "error", err)
		return false
	}
	return known
}
