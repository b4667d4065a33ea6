package dto

import (
	"time"

	"github.com/nadia/library/internal/domain/loan"
)

// CreateLoanRequest HTTP借书请求
// 引用存在性(400)与库存(403)校验在用例层,这里只做绑定
type CreateLoanRequest struct {
	BookID uint `json:"book_id" binding:"required" example:"1"`
	UserID uint `json:"user_id" binding:"required" example:"1"`
}

// LoanResponse HTTP借阅响应
// is_late与due_date均为派生字段:按当前时间现场计算,不落库
type LoanResponse struct {
	ID       uint   `json:"id" example:"1"`
	BookID   uint   `json:"book_id" example:"1"`
	UserID   uint   `json:"user_id" example:"1"`
	Status   string `json:"status" example:"NEW_LOAN"` // NEW_LOAN | RENEWAL
	LoanDate string `json:"loan_date" example:"2024-01-15"`
	DueDate  string `json:"due_date" example:"2024-02-05"`
	IsLate   bool   `json:"is_late" example:"false"`
}

// ToLoanResponse 领域实体 → HTTP响应
// periodDays为借期天数(配置注入)
func ToLoanResponse(l *loan.Loan, periodDays int) *LoanResponse {
	return &LoanResponse{
		ID:       l.ID,
		BookID:   l.BookID,
		UserID:   l.UserID,
		Status:   string(l.Status),
		LoanDate: l.LoanDate.Format("2006-01-02"),
		DueDate:  l.LoanDate.AddDate(0, 0, periodDays).Format("2006-01-02"),
		IsLate:   l.IsLate(time.Now(), periodDays),
	}
}

// ToLoanResponseList 批量转换
func ToLoanResponseList(loans []*loan.Loan, periodDays int) []*LoanResponse {
	out := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		out[i] = ToLoanResponse(l, periodDays)
	}
	return out
}
