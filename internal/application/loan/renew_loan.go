package loan

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nadia/library/internal/domain/loan"
	"github.com/nadia/library/pkg/metrics"
	"github.com/nadia/library/pkg/mq"
	"github.com/nadia/library/pkg/tracing"
)

// RenewLoanUseCase 续借用例
// 业务规则:
// 1. 只有首借(NEW_LOAN)且未逾期的记录可以续借
// 2. 续借后状态变为RENEWAL,借出日期重置为当天(重新起算借期)
// 3. 每条记录最多续借一次:RENEWAL状态的记录永远拒绝
type RenewLoanUseCase struct {
	loanRepo   loan.Repository
	periodDays int
	publisher  EventPublisher // 可为nil
}

// NewRenewLoanUseCase 创建续借用例
// periodDays为借期天数(配置注入)
func NewRenewLoanUseCase(loanRepo loan.Repository, periodDays int, publisher EventPublisher) *RenewLoanUseCase {
	return &RenewLoanUseCase{
		loanRepo:   loanRepo,
		periodDays: periodDays,
		publisher:  publisher,
	}
}

// Execute 执行续借
// 不涉及库存:副本仍在读者手里,续借只延长持有时间
func (uc *RenewLoanUseCase) Execute(ctx context.Context, loanID uint) (*loan.Loan, error) {
	ctx, span := tracing.StartSpan(ctx, "application/loan", "RenewLoan")
	defer span.End()
	span.SetAttributes(attribute.Int("loan_id", int(loanID)))

	// 1. 查询借阅记录
	l, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	// 2. 领域规则判定并变更状态
	// 拒绝时记录状态不变(映射HTTP 403)
	if err := l.Renew(time.Now(), uc.periodDays); err != nil {
		metrics.IncCounter(metrics.LoansRenewalRejectedTotal)
		return nil, err
	}

	// 3. 持久化
	if err := uc.loanRepo.Update(ctx, l); err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.LoansRenewedTotal)
	uc.publishRenewed(l)

	return l, nil
}

// publishRenewed 发布续借事件
func (uc *RenewLoanUseCase) publishRenewed(l *loan.Loan) {
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
	if err := uc.publisher.Publish(mq.RoutingKeyLoanRenewed, event); err != nil {
		log.Printf("续借事件发布失败: %v", err)
	}
}
