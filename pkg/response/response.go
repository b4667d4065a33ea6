package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/nadia/library/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（非HTTP状态码），方便客户端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回，失败时为null
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应（HTTP 201）
// 用于POST创建资源成功的场景（如新建借阅记录、新建图书）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

// NoContent 删除成功响应（HTTP 204，无响应体）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 设计说明：
// 1. 业务错误码按类别映射到真实的HTTP状态码（见httpStatus）
// 2. 同一请求在状态不变时重复提交，返回相同的错误码（幂等拒绝）
//
// 用法：
//
//	loan, err := createLoanUseCase.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	// 提取AppError
	appErr := apperrors.GetAppError(err)

	c.JSON(httpStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(httpStatus(code), Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// httpStatus 业务错误码 → HTTP状态码
// 映射规则（按错误码段）：
// - 404xx 资源不存在        → 404 Not Found
// - 401xx 业务规则拒绝      → 403 Forbidden（无库存、不可续借）
// - 407xx 资源状态冲突      → 409 Conflict（仍有副本在借）
// - 409xx 参数/引用错误     → 400 Bad Request
// - 400xx 其他业务错误      → 400 Bad Request
// - 5xxxx 服务端错误        → 500 Internal Server Error
func httpStatus(code int) int {
	switch {
	case code == 0:
		return http.StatusOK
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code >= 40100 && code < 40200:
		return http.StatusForbidden
	case code >= 40700 && code < 40800:
		return http.StatusConflict
	case code >= 40000 && code < 41000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
