package mq

import "time"

// 借阅事件路由键
// Topic Exchange下消费者可用loan.*订阅全部借阅事件
const (
	RoutingKeyLoanCreated  = "loan.created"
	RoutingKeyLoanRenewed  = "loan.renewed"
	RoutingKeyLoanReturned = "loan.returned"
)

// LoanEvent 借阅事件
// 三种路由键共用同一结构，消费者按RoutingKey区分动作
type LoanEvent struct {
	LoanID   uint      `json:"loan_id"`
	BookID   uint      `json:"book_id"`
	UserID   uint      `json:"user_id"`
	Status   string    `json:"status"`    // NEW_LOAN | RENEWAL
	LoanDate time.Time `json:"loan_date"` // 借出（或续借后重置的）日期
	OccurAt  time.Time `json:"occur_at"`  // 事件发生时间
}
