package user

import (
	"context"
)

// Repository 读者仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/mysql层
// 3. 便于单元测试（Mock此接口）
type Repository interface {
	// Create 创建读者
	// 注意：如果邮箱已存在，应返回ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找读者
	// 如果不存在，返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 根据邮箱查找读者
	// 如果不存在，返回ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll 查询全部读者
	FindAll(ctx context.Context) ([]*User, error)

	// ExistsByID 判断读者是否存在
	// 用于借阅创建时的外键引用校验
	ExistsByID(ctx context.Context, id uint) (bool, error)

	// Update 更新读者信息
	Update(ctx context.Context, user *User) error

	// Delete 删除读者
	Delete(ctx context.Context, id uint) error
}
