package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/nadia/library/internal/application/book"
	"github.com/nadia/library/internal/domain/book"
	"github.com/nadia/library/internal/interface/http/dto"
	apperrors "github.com/nadia/library/pkg/errors"
	"github.com/nadia/library/pkg/response"
)

// BookHandler 图书HTTP处理器
// 查询/更新走领域服务,添加/删除走应用层用例(跨聚合编排)
type BookHandler struct {
	bookService       book.Service
	addBookUseCase    *appbook.AddBookUseCase
	removeBookUseCase *appbook.RemoveBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	bookService book.Service,
	addBookUseCase *appbook.AddBookUseCase,
	removeBookUseCase *appbook.RemoveBookUseCase,
) *BookHandler {
	return &BookHandler{
		bookService:       bookService,
		addBookUseCase:    addBookUseCase,
		removeBookUseCase: removeBookUseCase,
	}
}

// ListBooks 查询图书列表
// @Summary      查询图书列表
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.bookService.ListBooks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]*dto.BookResponse, len(books))
	for i, b := range books {
		out[i] = toBookResponse(b)
	}
	response.Success(c, out)
}

// GetBook 查询图书详情
// @Summary      查询图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	b, err := h.bookService.GetBookByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toBookResponse(b))
}

// AddBook 添加图书
// @Summary      添加图书
// @Description  (作者ID,书名)已存在时库存+1,否则新建条目+库存记录
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse} "新建条目"
// @Success      200 {object} response.Response{data=dto.BookResponse} "已有条目库存+1"
// @Failure      400 {object} response.Response "参数错误/作者不存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.addBookUseCase.Execute(c.Request.Context(), appbook.AddBookRequest{
		AuthorID: req.AuthorID,
		Title:    req.Title,
		Copies:   req.Copies,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Created {
		response.Created(c, toBookResponse(result.Book))
	} else {
		response.Success(c, toBookResponse(result.Book))
	}
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	b, err := h.bookService.UpdateBook(c.Request.Context(), id, req.AuthorID, req.Title)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toBookResponse(b))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  仍有副本在借时返回409
// @Tags         图书
// @Param        id path int true "图书ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "仍有副本在借"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.removeBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// toBookResponse 领域实体 → HTTP响应
func toBookResponse(b *book.Book) *dto.BookResponse {
	return &dto.BookResponse{
		ID:        b.ID,
		AuthorID:  b.AuthorID,
		Title:     b.Title,
		CreatedAt: b.CreatedAt.Format(timeLayout),
		UpdatedAt: b.UpdatedAt.Format(timeLayout),
	}
}
