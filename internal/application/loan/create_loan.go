package loan

import (
	"context"
	"errors"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nadia/library/internal/domain/book"
	"github.com/nadia/library/internal/domain/inventory"
	"github.com/nadia/library/internal/domain/loan"
	"github.com/nadia/library/internal/domain/user"
	"github.com/nadia/library/pkg/metrics"
	"github.com/nadia/library/pkg/mq"
	"github.com/nadia/library/pkg/tracing"
)

// CreateLoanUseCase 创建借阅用例
// 教学要点:这是整个项目最核心的用例
// 涉及:引用校验、事务处理、并发控制下的库存扣减
type CreateLoanUseCase struct {
	loanRepo  loan.Repository
	bookRepo  book.Repository
	userRepo  user.Repository
	invRepo   inventory.Repository
	txManager Transactor
	cache     inventory.StockCache // 可为nil
	publisher EventPublisher       // 可为nil
}

// NewCreateLoanUseCase 创建借阅用例
func NewCreateLoanUseCase(
	loanRepo loan.Repository,
	bookRepo book.Repository,
	userRepo user.Repository,
	invRepo inventory.Repository,
	txManager Transactor,
	cache inventory.StockCache,
	publisher EventPublisher,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		loanRepo:  loanRepo,
		bookRepo:  bookRepo,
		userRepo:  userRepo,
		invRepo:   invRepo,
		txManager: txManager,
		cache:     cache,
		publisher: publisher,
	}
}

// CreateLoanRequest 借书请求
type CreateLoanRequest struct {
	BookID uint // 图书ID
	UserID uint // 读者ID
}

// Execute 执行借书用例
// 教学重点:防止超借的完整流程
//
// 核心问题:库存超借
// 场景:某书只剩1个副本,100人同时借
// 错误实现:
//  1. 查询库存 → 1个
//  2. 判断够不够 → 够
//  3. 扣减库存 → in_stock = in_stock - 1
//     结果:100个请求都通过了步骤2,库存被扣成-99(超借99本!)
//
// 正确实现:原子条件UPDATE
//  1. UPDATE ... SET in_stock = in_stock - 1 WHERE book_id = ? AND in_stock > 0
//     数据库行锁保证同一时刻只有一个UPDATE生效,扣不到就是没货
//  2. 扣减成功后在同一事务内创建借阅记录
//  3. 任一步失败整体回滚:不会出现"扣了库存没有记录"或反过来
//
// 校验顺序固定:引用缺失 → 图书不存在 → 读者不存在 → 无可借副本
// (前三者映射HTTP 400,无货映射HTTP 403)
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req CreateLoanRequest) (*loan.Loan, error) {
	start := time.Now()

	ctx, span := tracing.StartSpan(ctx, "application/loan", "CreateLoan")
	defer span.End()
	span.SetAttributes(
		attribute.Int("book_id", int(req.BookID)),
		attribute.Int("user_id", int(req.UserID)),
	)

	// 1. 参数校验:bookId/userId必填
	if req.BookID == 0 || req.UserID == 0 {
		metrics.IncCounterVec(metrics.LoansFailedTotal, map[string]string{"reason": "bad_reference"})
		return nil, loan.ErrMissingReference
	}

	// 2. 引用校验:图书必须存在
	if ok, err := uc.bookRepo.ExistsByID(ctx, req.BookID); err != nil {
		return nil, err
	} else if !ok {
		metrics.IncCounterVec(metrics.LoansFailedTotal, map[string]string{"reason": "bad_reference"})
		return nil, loan.ErrBookReference
	}

	// 3. 引用校验:读者必须存在
	if ok, err := uc.userRepo.ExistsByID(ctx, req.UserID); err != nil {
		return nil, err
	} else if !ok {
		metrics.IncCounterVec(metrics.LoansFailedTotal, map[string]string{"reason": "bad_reference"})
		return nil, loan.ErrUserReference
	}

	// 4. 事务:扣减库存+创建借阅记录
	// 教学要点:引用校验在事务外(只读,无一致性风险),
	// 库存扣减和记录创建必须同事务(原子配对,借出数+在馆数守恒)
	newLoan := loan.NewLoan(req.BookID, req.UserID, time.Now())
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 原子条件扣减,无货时返回ErrNoCopiesAvailable
		if err := uc.invRepo.DecrementStock(txCtx, req.BookID); err != nil {
			return err
		}
		return uc.loanRepo.Create(txCtx, newLoan)
	})

	if err != nil {
		span.RecordError(err)
		if errors.Is(err, inventory.ErrNoCopiesAvailable) {
			metrics.IncCounterVec(metrics.LoansFailedTotal, map[string]string{"reason": "no_stock"})
		} else {
			metrics.IncCounterVec(metrics.LoansFailedTotal, map[string]string{"reason": "internal"})
		}
		return nil, err
	}

	// 5. 事务提交后:记指标、失效缓存、发布事件
	metrics.IncCounter(metrics.LoansCreatedTotal)
	metrics.ObserveHistogram(metrics.LoanAdmissionDuration, time.Since(start).Seconds())

	uc.invalidateCache(ctx, req.BookID)
	uc.publish(mq.RoutingKeyLoanCreated, newLoan)

	return newLoan, nil
}

// invalidateCache 库存已变化,使读缓存失效
// 缓存失效失败只记录日志:短TTL会兜底,不影响主流程
func (uc *CreateLoanUseCase) invalidateCache(ctx context.Context, bookID uint) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, bookID); err != nil {
		log.Printf("库存缓存失效失败: %v", err)
	}
}

// publish 发布借阅事件(事务提交后,失败不影响主流程)
func (uc *CreateLoanUseCase) publish(routingKey string, l *loan.Loan) {
	if uc.publisher == nil {
		return
	}
	event := mq.LoanEvent{
		LoanID:   l.ID,
		BookID:   l.BookID,
		UserID:   l.UserID,
		Status:   string(l.Status),
		LoanDate: l.LoanDate,
		OccurAt:  time.Now(),
	}
	if err := uc.publisher.Publish(routingKey, event); err != nil {
		log.Printf("借阅事件发布失败: routingKey=%s, err=%v", routingKey, err)
	}
}
