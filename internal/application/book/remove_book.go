package book

import (
	"context"
	"errors"
	"log"

	apploan "github.com/nadia/library/internal/application/loan"
	"github.com/nadia/library/internal/domain/book"
	"github.com/nadia/library/internal/domain/inventory"
	"github.com/nadia/library/internal/domain/loan"
)

// RemoveBookUseCase 删除图书用例
// 业务规则:
// 1. 仍有副本在借时拒绝删除(映射HTTP 409):
//    先删条目会让在借记录悬空,归还时无处回增库存
// 2. 图书条目与库存记录同事务删除
type RemoveBookUseCase struct {
	bookRepo  book.Repository
	loanRepo  loan.Repository
	invRepo   inventory.Repository
	txManager apploan.Transactor
	cache     inventory.StockCache // 可为nil
}

// NewRemoveBookUseCase 创建删除图书用例
func NewRemoveBookUseCase(
	bookRepo book.Repository,
	loanRepo loan.Repository,
	invRepo inventory.Repository,
	txManager apploan.Transactor,
	cache inventory.StockCache,
) *RemoveBookUseCase {
	return &RemoveBookUseCase{
		bookRepo:  bookRepo,
		loanRepo:  loanRepo,
		invRepo:   invRepo,
		txManager: txManager,
		cache:     cache,
	}
}

// Execute 执行删除图书
func (uc *RemoveBookUseCase) Execute(ctx context.Context, bookID uint) error {
	// 1. 图书必须存在(映射HTTP 404)
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return err
	}

	// 2. 冲突检查:仍有副本在借则拒绝(映射HTTP 409)
	onLoan, err := uc.loanRepo.ExistsByBookID(ctx, bookID)
	if err != nil {
		return err
	}
	if onLoan {
		return book.ErrCopiesOnLoan
	}

	// 3. 事务:库存记录与图书条目一起删除
	// 库存记录不存在不视为错误(条目可能从未建过库存,直接删条目)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.invRepo.DeleteByBookID(txCtx, bookID); err != nil &&
			!errors.Is(err, inventory.ErrInventoryNotFound) {
			return err
		}
		return uc.bookRepo.Delete(txCtx, bookID)
	})
	if err != nil {
		return err
	}

	// 4. 缓存清理
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, bookID); err != nil {
			log.Printf("库存缓存失效失败: %v", err)
		}
	}

	return nil
}
