package loan

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nadia/library/internal/domain/inventory"
	"github.com/nadia/library/internal/domain/loan"
	"github.com/nadia/library/pkg/metrics"
	"github.com/nadia/library/pkg/mq"
	"github.com/nadia/library/pkg/tracing"
)

// ReturnLoanUseCase 归还用例
// 业务规则:
// 1. 归还=删除借阅记录,记录的存在本身就是"在借"状态
// 2. 库存回增与记录删除同事务:借出数+在馆数守恒
// 3. 借出-归还一轮后库存回到原值(与借阅时长、是否逾期、是否续借无关)
type ReturnLoanUseCase struct {
	loanRepo  loan.Repository
	invRepo   inventory.Repository
	txManager Transactor
	cache     inventory.StockCache // 可为nil
	publisher EventPublisher       // 可为nil
}

// NewReturnLoanUseCase 创建归还用例
func NewReturnLoanUseCase(
	loanRepo loan.Repository,
	invRepo inventory.Repository,
	txManager Transactor,
	cache inventory.StockCache,
	publisher EventPublisher,
) *ReturnLoanUseCase {
	return &ReturnLoanUseCase{
		loanRepo:  loanRepo,
		invRepo:   invRepo,
		txManager: txManager,
		cache:     cache,
		publisher: publisher,
	}
}

// Execute 执行归还
// 逾期的记录一样可以归还,逾期只影响续借资格
func (uc *ReturnLoanUseCase) Execute(ctx context.Context, loanID uint) error {
	ctx, span := tracing.StartSpan(ctx, "application/loan", "ReturnLoan")
	defer span.End()
	span.SetAttributes(attribute.Int("loan_id", int(loanID)))

	// 1. 查询借阅记录(不存在映射HTTP 404)
	l, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return err
	}

	// 2. 事务:库存+1与记录删除原子配对
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.invRepo.IncrementStock(txCtx, l.BookID); err != nil {
			return err
		}
		return uc.loanRepo.Delete(txCtx, l.ID)
	})
	if err != nil {
		return err
	}

	// 3. 事务提交后:记指标、失效缓存、发布事件
	metrics.IncCounter(metrics.LoansReturnedTotal)

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, l.BookID); err != nil {
			log.Printf("库存缓存失效失败: %v", err)
		}
	}

	if uc.publisher != nil {
		event := mq.LoanEvent{
			LoanID:   l.ID,
			BookID:   l.BookID,
			UserID:   l.UserID,
			Status:   string(l.Status),
			LoanDate: l.LoanDate,
			OccurAt:  time.Now(),
		}
		if err := uc.publisher.Publish(mq.RoutingKeyLoanReturned, event); err != nil {
			log.Printf("归还事件发布失败: %v", err)
		}
	}

	return nil
}
