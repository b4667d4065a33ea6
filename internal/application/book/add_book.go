package book

import (
	"context"
	"errors"
	"log"

	apploan "github.com/nadia/library/internal/application/loan"
	"github.com/nadia/library/internal/domain/author"
	"github.com/nadia/library/internal/domain/book"
	"github.com/nadia/library/internal/domain/inventory"
	apperrors "github.com/nadia/library/pkg/errors"
)

// AddBookUseCase 添加图书用例
// 业务规则:
// 1. (作者ID,书名)唯一标识一个图书条目
// 2. 条目已存在 → 库存+1(本次添加视为新进一个副本)
// 3. 条目不存在 → 同事务创建图书条目+库存记录
type AddBookUseCase struct {
	authorRepo author.Repository
	bookRepo   book.Repository
	invRepo    inventory.Repository
	txManager  apploan.Transactor
	cache      inventory.StockCache // 可为nil
}

// NewAddBookUseCase 创建添加图书用例
func NewAddBookUseCase(
	authorRepo author.Repository,
	bookRepo book.Repository,
	invRepo inventory.Repository,
	txManager apploan.Transactor,
	cache inventory.StockCache,
) *AddBookUseCase {
	return &AddBookUseCase{
		authorRepo: authorRepo,
		bookRepo:   bookRepo,
		invRepo:    invRepo,
		txManager:  txManager,
		cache:      cache,
	}
}

// AddBookRequest 添加图书请求
type AddBookRequest struct {
	AuthorID uint   // 作者ID
	Title    string // 书名
	Copies   int    // 初始副本数(仅新条目生效,0视为1)
}

// AddBookResult 添加结果
type AddBookResult struct {
	Book    *book.Book
	Created bool // true=新建条目,false=已有条目库存+1
}

// Execute 执行添加图书
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*AddBookResult, error) {
	// 1. 参数校验
	if req.Title == "" {
		return nil, apperrors.ErrInvalidParams
	}
	if req.Copies < 0 {
		return nil, inventory.ErrNegativeStock
	}
	if req.AuthorID == 0 {
		return nil, book.ErrAuthorReference
	}

	// 2. 引用校验:作者必须存在(映射HTTP 400)
	if ok, err := uc.authorRepo.ExistsByID(ctx, req.AuthorID); err != nil {
		return nil, err
	} else if !ok {
		return nil, book.ErrAuthorReference
	}

	// 3. 按(作者ID,书名)查找已有条目
	existing, err := uc.bookRepo.FindByAuthorIDAndTitle(ctx, req.AuthorID, req.Title)
	if err != nil && !errors.Is(err, book.ErrBookNotFound) {
		return nil, err
	}

	// 4a. 条目已存在:本次添加视为新进一个副本,库存+1
	if existing != nil {
		if err := uc.invRepo.IncrementStock(ctx, existing.ID); err != nil {
			return nil, err
		}
		uc.invalidateCache(ctx, existing.ID)
		return &AddBookResult{Book: existing, Created: false}, nil
	}

	// 4b. 条目不存在:同事务创建图书条目+库存记录
	// 两条记录必须一起出现,否则会有"有条目没库存"的孤儿数据
	copies := req.Copies
	if copies == 0 {
		copies = 1
	}

	newBook := book.NewBook(req.AuthorID, req.Title)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.bookRepo.Create(txCtx, newBook); err != nil {
			return err
		}
		return uc.invRepo.Create(txCtx, inventory.NewInventory(newBook.ID, copies))
	})
	if err != nil {
		return nil, err
	}

	return &AddBookResult{Book: newBook, Created: true}, nil
}

// invalidateCache 库存已变化,使读缓存失效
func (uc *AddBookUseCase) invalidateCache(ctx context.Context, bookID uint) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, bookID); err != nil {
		log.Printf("库存缓存失效失败: %v", err)
	}
}
