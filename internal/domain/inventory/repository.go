package inventory

import (
	"context"
)

// Repository 库存仓储接口(领域层定义)
// 设计说明:
// 1. 增减操作必须是原子的条件UPDATE,不允许"读出-修改-写回"
//    (并发借书时读改写会造成超借,见application/loan的编排说明)
// 2. 增减操作需要参与事务(通过context传递事务DB)
type Repository interface {
	// FindAll 查询全部库存记录
	FindAll(ctx context.Context) ([]*Inventory, error)

	// FindByID 根据ID查找库存记录
	// 如果不存在,返回ErrInventoryNotFound
	FindByID(ctx context.Context, id uint) (*Inventory, error)

	// FindByBookID 根据图书ID查找库存记录
	// 如果不存在,返回ErrInventoryNotFound
	FindByBookID(ctx context.Context, bookID uint) (*Inventory, error)

	// Create 创建库存记录(每本书一条,初始副本数>=0)
	Create(ctx context.Context, inv *Inventory) error

	// IncrementStock 库存+1(原子UPDATE,无上限)
	// 用于归还图书、重复添加已有图书
	IncrementStock(ctx context.Context, bookID uint) error

	// DecrementStock 库存-1(原子条件UPDATE: in_stock > 0才扣减)
	// 扣减失败时区分两种原因:
	// - 库存记录不存在 → ErrInventoryNotFound
	// - 库存已为0     → ErrNoCopiesAvailable
	// 下限保护在存储层完成,调用方不需要(也不应该依赖)先读后判
	DecrementStock(ctx context.Context, bookID uint) error

	// SetStock 管理员直接修正库存(count>=0)
	SetStock(ctx context.Context, bookID uint, count int) (*Inventory, error)

	// DeleteByBookID 删除图书的库存记录
	// 注意:必须在事务中与图书条目一起删除
	DeleteByBookID(ctx context.Context, bookID uint) error
}

// StockCache 库存读缓存接口
// 设计说明:
// 1. 只加速公开查询接口的StockOf读路径,借阅准入判断永远走数据库事务
// 2. 实现在infrastructure/persistence/redis层
type StockCache interface {
	// GetStock 读取缓存的库存数,未命中返回ok=false
	GetStock(ctx context.Context, bookID uint) (count int, ok bool, err error)

	// SetStock 写入缓存(带TTL)
	SetStock(ctx context.Context, bookID uint, count int) error

	// Invalidate 库存变更后使缓存失效
	Invalidate(ctx context.Context, bookID uint) error
}
