package user

import (
	apperrors "github.com/nadia/library/pkg/errors"
)

// 读者领域错误定义
var (
	// ErrUserNotFound 读者不存在
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "读者不存在")

	// ErrEmailDuplicate 邮箱已被注册
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")

	// ErrInvalidEmail 邮箱格式不正确
	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
)
