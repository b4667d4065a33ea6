package inventory

import (
	apperrors "github.com/nadia/library/pkg/errors"
)

// 库存领域错误定义
var (
	// ErrInventoryNotFound 库存记录不存在
	ErrInventoryNotFound = apperrors.New(apperrors.ErrCodeInventoryNotFound, "库存记录不存在")

	// ErrNoCopiesAvailable 无可借副本(业务拒绝,映射HTTP 403)
	ErrNoCopiesAvailable = apperrors.New(apperrors.ErrCodeNoStock, "该图书暂无可借副本")

	// ErrNegativeStock 库存不能为负数
	ErrNegativeStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrInvalidBookID 无效的图书ID
	ErrInvalidBookID = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的图书ID")
)
