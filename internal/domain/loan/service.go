package loan

import (
	"context"
	"time"
)

// Service 借阅领域服务(查询侧)
// 设计说明:
// 1. 只负责借阅的查询与逾期派生,不做任何写操作
// 2. 写操作(创建/续借/归还)涉及库存事务编排,在application/loan实现
// 3. periodDays(借期天数)从配置注入,不在代码里写死21
type Service interface {
	// ListLoans 查询全部在借记录
	ListLoans(ctx context.Context) ([]*Loan, error)

	// ListLateLoans 查询全部逾期记录
	// 逾期现场派生:对全量在借记录按当前时间过滤,无落库的逾期标志
	ListLateLoans(ctx context.Context) ([]*Loan, error)

	// GetLoanByID 根据ID获取借阅记录
	GetLoanByID(ctx context.Context, id uint) (*Loan, error)

	// PeriodDays 借期天数(供handler层展示应还日期等场景)
	PeriodDays() int
}

type service struct {
	repo       Repository
	periodDays int
}

// NewService 创建借阅领域服务
// periodDays为借期天数(配置注入,默认21)
func NewService(repo Repository, periodDays int) Service {
	return &service{repo: repo, periodDays: periodDays}
}

// ListLoans 查询全部在借记录
func (s *service) ListLoans(ctx context.Context) ([]*Loan, error) {
	return s.repo.FindAll(ctx)
}

// ListLateLoans 查询全部逾期记录
func (s *service) ListLateLoans(ctx context.Context) ([]*Loan, error) {
	loans, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	late := make([]*Loan, 0)
	for _, l := range loans {
		if l.IsLate(now, s.periodDays) {
			late = append(late, l)
		}
	}
	return late, nil
}

// GetLoanByID 根据ID获取借阅记录
func (s *service) GetLoanByID(ctx context.Context, id uint) (*Loan, error) {
	return s.repo.FindByID(ctx, id)
}

// PeriodDays 借期天数
func (s *service) PeriodDays() int {
	return s.periodDays
}
