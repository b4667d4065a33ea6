package book

import (
	apperrors "github.com/nadia/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrAuthorReference 作者引用无法解析
	ErrAuthorReference = apperrors.New(apperrors.ErrCodeInvalidReference, "authorId对应的作者不存在")

	// ErrCopiesOnLoan 仍有副本在借,不能删除
	ErrCopiesOnLoan = apperrors.New(apperrors.ErrCodeCopiesOnLoan, "仍有副本在借,不能删除该图书")
)
