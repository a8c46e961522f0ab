package health

import (
	"context"
	"net/http"

	"github.com/SlpAus/reaction-records-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// Report 是健康检查接口的响应
type Report struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// GetHealth 报告数据库和Redis的可用性。数据库不可用时返回503。
func GetHealth(c *gin.Context) {
	report := Report{Status: "ok", Database: "up", Redis: redisState()}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		report.Status = "unavailable"
		report.Database = "down"
		c.JSON(http.StatusServiceUnavailable, report)
		return
	}
	c.JSON(http.StatusOK, report)
}

func redisState() string {
	switch {
	case !database.IsRedisEnabled():
		return "disabled"
	case database.IsRedisHealthy():
		return "up"
	default:
		return "down"
	}
}
