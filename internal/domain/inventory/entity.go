package inventory

import "time"

// Inventory 库存实体
// 设计说明:
// 1. 每个Book对应一条Inventory记录,InStock是该书当前可借副本数
// 2. 不追踪具体副本(无条码/副本号),只维护聚合计数
// 3. InStock>=0是硬性不变量:扣减由存储层条件UPDATE保证不会越过下限,
//    不依赖调用方先检查(调用方检查与扣减之间存在并发窗口)
type Inventory struct {
	ID        uint
	BookID    uint // 图书ID(一对一)
	InStock   int  // 在馆可借副本数
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewInventory 创建库存记录(工厂方法)
// initial为初始副本数,必须>=0
func NewInventory(bookID uint, initial int) *Inventory {
	now := time.Now()
	return &Inventory{
		BookID:    bookID,
		InStock:   initial,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate 验证库存实体
func (i *Inventory) Validate() error {
	if i.BookID == 0 {
		return ErrInvalidBookID
	}
	if i.InStock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// IsOutOfStock 判断是否无可借副本
func (i *Inventory) IsOutOfStock() bool {
	return i.InStock <= 0
}
