package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 删除操作需要参与事务(与库存记录一起删除),通过context传递事务DB
type Repository interface {
	// Create 创建图书条目
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	// 如果不存在,返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByAuthorIDAndTitle 根据(作者ID,书名)查找图书
	// 用于添加图书时判断条目是否已存在
	FindByAuthorIDAndTitle(ctx context.Context, authorID uint, title string) (*Book, error)

	// FindAll 查询全部图书
	FindAll(ctx context.Context) ([]*Book, error)

	// ExistsByID 判断图书是否存在
	// 用于借阅创建时的外键引用校验
	ExistsByID(ctx context.Context, id uint) (bool, error)

	// Update 更新图书条目
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书条目
	// 注意:必须在事务中与库存记录一起删除(通过context传递事务DB)
	Delete(ctx context.Context, id uint) error
}
