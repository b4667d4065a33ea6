package inventory

import (
	"context"
	"log"
)

// Service 库存领域服务
// 设计说明:
// 1. 对外提供库存查询与管理员库存修正
// 2. StockOf读路径走Redis缓存(读多写少,短TTL),未命中回源数据库
// 3. 借阅流程的扣减/回补不经过本服务,由application/loan直接调用Repository
//    在事务内完成(缓存由借阅用例在事务提交后失效)
type Service interface {
	// ListInventory 查询全部库存记录
	ListInventory(ctx context.Context) ([]*Inventory, error)

	// GetInventoryByID 根据ID获取库存记录
	GetInventoryByID(ctx context.Context, id uint) (*Inventory, error)

	// StockOf 查询某本书的在馆副本数
	// 如果该书没有库存记录,返回ErrInventoryNotFound
	StockOf(ctx context.Context, bookID uint) (int, error)

	// SetStockByBookID 管理员修正库存(count>=0)
	SetStockByBookID(ctx context.Context, bookID uint, count int) (*Inventory, error)
}

type service struct {
	repo  Repository
	cache StockCache // 可为nil(未配置Redis时直连数据库)
}

// NewService 创建库存领域服务
func NewService(repo Repository, cache StockCache) Service {
	return &service{repo: repo, cache: cache}
}

// ListInventory 查询全部库存记录
func (s *service) ListInventory(ctx context.Context) ([]*Inventory, error) {
	return s.repo.FindAll(ctx)
}

// GetInventoryByID 根据ID获取库存记录
func (s *service) GetInventoryByID(ctx context.Context, id uint) (*Inventory, error) {
	return s.repo.FindByID(ctx, id)
}

// StockOf 查询某本书的在馆副本数(读缓存 → 回源 → 回填)
// 缓存故障时降级为直连数据库,只记录日志不向上传播
func (s *service) StockOf(ctx context.Context, bookID uint) (int, error) {
	if s.cache != nil {
		if count, ok, err := s.cache.GetStock(ctx, bookID); err == nil && ok {
			return count, nil
		} else if err != nil {
			log.Printf("库存缓存读取失败(降级直连数据库): %v", err)
		}
	}

	inv, err := s.repo.FindByBookID(ctx, bookID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetStock(ctx, bookID, inv.InStock); err != nil {
			log.Printf("库存缓存回填失败: %v", err)
		}
	}
	return inv.InStock, nil
}

// SetStockByBookID 管理员修正库存
func (s *service) SetStockByBookID(ctx context.Context, bookID uint, count int) (*Inventory, error) {
	if count < 0 {
		return nil, ErrNegativeStock
	}

	inv, err := s.repo.SetStock(ctx, bookID, count)
	if err != nil {
		return nil, err
	}

	// 库存已变化,缓存失效
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, bookID); err != nil {
			log.Printf("库存缓存失效失败: %v", err)
		}
	}
	return inv, nil
}
