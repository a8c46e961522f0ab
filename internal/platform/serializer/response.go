package serializer

import (
	"errors"
	"net/http"

	"github.com/SlpAus/reaction-records-backend/internal/platform/logging"
	"github.com/gin-gonic/gin"
)

// RespondError 把请求解析阶段或存储层的错误写入响应。
// RequestError 按其状态码原样返回，其余错误一律视为服务器错误。
func RespondError(c *gin.Context, err error) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		c.JSON(reqErr.Status, reqErr.Body)
		return
	}
	logging.FromContext(c).Error("处理请求失败", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": MsgServerError})
}
