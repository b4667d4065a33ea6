package handler

import (
	"github.com/gin-gonic/gin"

	apploan "github.com/nadia/library/internal/application/loan"
	"github.com/nadia/library/internal/domain/loan"
	"github.com/nadia/library/internal/interface/http/dto"
	apperrors "github.com/nadia/library/pkg/errors"
	"github.com/nadia/library/pkg/response"
)

// LoanHandler 借阅HTTP处理器
// 查询走领域服务,写操作(借/续/还)走应用层用例
type LoanHandler struct {
	loanService       loan.Service
	createLoanUseCase *apploan.CreateLoanUseCase
	renewLoanUseCase  *apploan.RenewLoanUseCase
	returnLoanUseCase *apploan.ReturnLoanUseCase
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(
	loanService loan.Service,
	createLoanUseCase *apploan.CreateLoanUseCase,
	renewLoanUseCase *apploan.RenewLoanUseCase,
	returnLoanUseCase *apploan.ReturnLoanUseCase,
) *LoanHandler {
	return &LoanHandler{
		loanService:       loanService,
		createLoanUseCase: createLoanUseCase,
		renewLoanUseCase:  renewLoanUseCase,
		returnLoanUseCase: returnLoanUseCase,
	}
}

// ListLoans 查询在借记录列表
// @Summary      查询在借记录列表
// @Tags         借阅
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.LoanResponse}
// @Router       /api/v1/loans [get]
func (h *LoanHandler) ListLoans(c *gin.Context) {
	loans, err := h.loanService.ListLoans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToLoanResponseList(loans, h.loanService.PeriodDays()))
}

// ListLateLoans 查询逾期记录列表
// @Summary      查询逾期记录列表
// @Description  逾期=借出超过借期天数,按当前时间现场派生
// @Tags         借阅
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.LoanResponse}
// @Router       /api/v1/loans/late [get]
func (h *LoanHandler) ListLateLoans(c *gin.Context) {
	loans, err := h.loanService.ListLateLoans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToLoanResponseList(loans, h.loanService.PeriodDays()))
}

// GetLoan 查询借阅详情
// @Summary      查询借阅详情
// @Tags         借阅
// @Produce      json
// @Param        id path int true "借阅ID"
// @Success      200 {object} response.Response{data=dto.LoanResponse}
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{id} [get]
func (h *LoanHandler) GetLoan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	l, err := h.loanService.GetLoanByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToLoanResponse(l, h.loanService.PeriodDays()))
}

// CreateLoan 借书
// @Summary      借书
// @Description  图书/读者必须存在(否则400),有可借副本(否则403);成功后库存-1
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateLoanRequest true "借书请求"
// @Success      201 {object} response.Response{data=dto.LoanResponse}
// @Failure      400 {object} response.Response "参数错误/图书或读者不存在"
// @Failure      403 {object} response.Response "暂无可借副本"
// @Router       /api/v1/loans [post]
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidReference, "参数错误: "+err.Error())
		return
	}

	l, err := h.createLoanUseCase.Execute(c.Request.Context(), apploan.CreateLoanRequest{
		BookID: req.BookID,
		UserID: req.UserID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToLoanResponse(l, h.loanService.PeriodDays()))
}

// RenewLoan 续借
// @Summary      续借
// @Description  只有首借且未逾期的记录可续借;续借重置借出日期
// @Tags         借阅
// @Produce      json
// @Param        id path int true "借阅ID"
// @Success      200 {object} response.Response{data=dto.LoanResponse}
// @Failure      403 {object} response.Response "已续借过或已逾期"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{id}/renew [put]
func (h *LoanHandler) RenewLoan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	l, err := h.renewLoanUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToLoanResponse(l, h.loanService.PeriodDays()))
}

// ReturnLoan 归还
// @Summary      归还
// @Description  删除借阅记录并回增库存;逾期记录一样可归还
// @Tags         借阅
// @Param        id path int true "借阅ID"
// @Success      204 "归还成功"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{id} [delete]
func (h *LoanHandler) ReturnLoan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.returnLoanUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
