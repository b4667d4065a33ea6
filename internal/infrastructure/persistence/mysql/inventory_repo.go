package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nadia/library/internal/domain/inventory"
	apperrors "github.com/nadia/library/pkg/errors"
)

// inventoryRepository 库存仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/inventory/repository.go定义的接口
// 2. 增减库存使用原子条件UPDATE,下限保护在SQL层完成
// 3. 增减与删除必须能参与事务,使用getDB(ctx)
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓储
func NewInventoryRepository(db *gorm.DB) inventory.Repository {
	return &inventoryRepository{db: db}
}

// FindAll 查询全部库存记录
func (r *inventoryRepository) FindAll(ctx context.Context) ([]*inventory.Inventory, error) {
	var models []InventoryModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询库存列表失败")
	}

	invs := make([]*inventory.Inventory, len(models))
	for i, model := range models {
		invs[i] = toInventoryEntity(&model)
	}
	return invs, nil
}

// FindByID 根据ID查找库存记录
func (r *inventoryRepository) FindByID(ctx context.Context, id uint) (*inventory.Inventory, error) {
	var model InventoryModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrInventoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存失败")
	}

	return toInventoryEntity(&model), nil
}

// FindByBookID 根据图书ID查找库存记录
func (r *inventoryRepository) FindByBookID(ctx context.Context, bookID uint) (*inventory.Inventory, error) {
	var model InventoryModel
	err := r.db.WithContext(ctx).Where("book_id = ?", bookID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrInventoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存失败")
	}

	return toInventoryEntity(&model), nil
}

// Create 创建库存记录
// 可能在事务中执行(新书条目与初始库存一起创建)
func (r *inventoryRepository) Create(ctx context.Context, inv *inventory.Inventory) error {
	model := &InventoryModel{
		BookID:  inv.BookID,
		InStock: inv.InStock,
	}

	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建库存记录失败")
	}

	inv.ID = model.ID
	inv.CreatedAt = model.CreatedAt
	inv.UpdatedAt = model.UpdatedAt

	return nil
}

// IncrementStock 库存+1(原子UPDATE)
// UPDATE inventories SET in_stock = in_stock + 1 WHERE book_id = ?
func (r *inventoryRepository) IncrementStock(ctx context.Context, bookID uint) error {
	db := getDB(ctx, r.db)
	result := db.Model(&InventoryModel{}).
		Where("book_id = ?", bookID).
		Update("in_stock", gorm.Expr("in_stock + 1"))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "增加库存失败")
	}

	if result.RowsAffected == 0 {
		return inventory.ErrInventoryNotFound
	}

	return nil
}

// DecrementStock 库存-1(原子条件UPDATE)
// UPDATE inventories SET in_stock = in_stock - 1 WHERE book_id = ? AND in_stock > 0
// 教学要点:
// 1. WHERE子句带in_stock > 0,SQL层原子判定"有货才扣",
//    并发借同一本书时不可能把库存扣成负数
// 2. 受影响行数为0有两种原因,再查一次区分:
//    记录不存在 → ErrInventoryNotFound;记录存在 → 库存已为0
// 3. 必须使用getDB(ctx)参与事务:借阅记录创建失败时扣减要一起回滚
func (r *inventoryRepository) DecrementStock(ctx context.Context, bookID uint) error {
	db := getDB(ctx, r.db)
	result := db.Model(&InventoryModel{}).
		Where("book_id = ?", bookID).
		Where("in_stock > 0").
		Update("in_stock", gorm.Expr("in_stock - 1"))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "扣减库存失败")
	}

	if result.RowsAffected == 0 {
		var model InventoryModel
		if err := db.Where("book_id = ?", bookID).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return inventory.ErrInventoryNotFound
			}
			return apperrors.Wrap(err, "查询库存失败")
		}
		// 记录存在,说明是库存不足
		return inventory.ErrNoCopiesAvailable
	}

	return nil
}

// SetStock 管理员直接修正库存
// 返回修正后的库存记录
func (r *inventoryRepository) SetStock(ctx context.Context, bookID uint, count int) (*inventory.Inventory, error) {
	result := r.db.WithContext(ctx).Model(&InventoryModel{}).
		Where("book_id = ?", bookID).
		Update("in_stock", count)

	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, "修正库存失败")
	}

	if result.RowsAffected == 0 {
		return nil, inventory.ErrInventoryNotFound
	}

	return r.FindByBookID(ctx, bookID)
}

// DeleteByBookID 删除图书的库存记录
// 教学要点:必须使用getDB(ctx)参与事务,与图书条目的删除保持原子
func (r *inventoryRepository) DeleteByBookID(ctx context.Context, bookID uint) error {
	db := getDB(ctx, r.db)
	result := db.Where("book_id = ?", bookID).Delete(&InventoryModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除库存记录失败")
	}

	if result.RowsAffected == 0 {
		return inventory.ErrInventoryNotFound
	}

	return nil
}

// toInventoryEntity GORM模型 → 领域实体
func toInventoryEntity(model *InventoryModel) *inventory.Inventory {
	return &inventory.Inventory{
		ID:        model.ID,
		BookID:    model.BookID,
		InStock:   model.InStock,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
