package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/nadia/library/pkg/errors"
	"github.com/nadia/library/pkg/response"
)

// 时间展示格式,全部响应统一
const timeLayout = "2006-01-02 15:04:05"

// parseIDParam 解析路径参数:id
// 解析失败时直接写出400响应并返回ok=false,handler应立即return
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的ID: "+c.Param("id"))
		return 0, false
	}
	return uint(id), true
}
