package author

import (
	"context"
)

// Repository 作者仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建作者
	Create(ctx context.Context, author *Author) error

	// FindByID 根据ID查找作者
	// 如果不存在,返回ErrAuthorNotFound
	FindByID(ctx context.Context, id uint) (*Author, error)

	// FindAll 查询全部作者
	FindAll(ctx context.Context) ([]*Author, error)

	// ExistsByID 判断作者是否存在
	// 用于图书创建时的外键引用校验
	ExistsByID(ctx context.Context, id uint) (bool, error)

	// Update 更新作者信息
	Update(ctx context.Context, author *Author) error

	// Delete 删除作者
	Delete(ctx context.Context, id uint) error
}
