package loan

import (
	apperrors "github.com/nadia/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrLoanNotFound 借阅记录不存在
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "借阅记录不存在")

	// ErrBookReference 图书引用无法解析(bookId不存在,映射HTTP 400)
	ErrBookReference = apperrors.New(apperrors.ErrCodeInvalidReference, "bookId对应的图书不存在")

	// ErrUserReference 读者引用无法解析(userId不存在,映射HTTP 400)
	ErrUserReference = apperrors.New(apperrors.ErrCodeInvalidReference, "userId对应的读者不存在")

	// ErrNotRenewable 借阅不可续借(已续借过或已逾期,映射HTTP 403)
	ErrNotRenewable = apperrors.New(apperrors.ErrCodeNotRenewable, "该借阅不可续借(已续借过或已逾期)")

	// ErrMissingReference bookId/userId缺失(映射HTTP 400)
	ErrMissingReference = apperrors.New(apperrors.ErrCodeInvalidReference, "bookId和userId为必填字段")
)
