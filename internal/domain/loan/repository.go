package loan

import (
	"context"
)

// Repository 借阅仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. Create/Delete必须能参与事务(与库存增减配对,通过context传递事务DB)
type Repository interface {
	// Create 创建借阅记录
	Create(ctx context.Context, loan *Loan) error

	// FindByID 根据ID查找借阅记录
	// 如果不存在,返回ErrLoanNotFound
	FindByID(ctx context.Context, id uint) (*Loan, error)

	// FindAll 查询全部在借记录
	FindAll(ctx context.Context) ([]*Loan, error)

	// ExistsByBookID 判断某本书是否有副本在借
	// 用于图书删除前的冲突检查
	ExistsByBookID(ctx context.Context, bookID uint) (bool, error)

	// CountByBookID 统计某本书当前在借的副本数
	CountByBookID(ctx context.Context, bookID uint) (int64, error)

	// Update 更新借阅记录(用于续借)
	Update(ctx context.Context, loan *Loan) error

	// Delete 删除借阅记录(归还)
	Delete(ctx context.Context, id uint) error
}
