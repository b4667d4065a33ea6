package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nadia/library/internal/domain/author"
	"github.com/nadia/library/internal/interface/http/dto"
	apperrors "github.com/nadia/library/pkg/errors"
	"github.com/nadia/library/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	authorService author.Service
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(authorService author.Service) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

// ListAuthors 查询作者列表
// @Summary      查询作者列表
// @Tags         作者
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.AuthorResponse}
// @Router       /api/v1/authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.authorService.ListAuthors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]*dto.AuthorResponse, len(authors))
	for i, a := range authors {
		out[i] = toAuthorResponse(a)
	}
	response.Success(c, out)
}

// GetAuthor 查询作者详情
// @Summary      查询作者详情
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [get]
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	a, err := h.authorService.GetAuthorByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toAuthorResponse(a))
}

// CreateAuthor 创建作者
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      201 {object} response.Response{data=dto.AuthorResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req dto.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	a, err := h.authorService.CreateAuthor(c.Request.Context(), req.Name, req.Country)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toAuthorResponse(a))
}

// UpdateAuthor 更新作者
// @Summary      更新作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Param        id path int true "作者ID"
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	a, err := h.authorService.UpdateAuthor(c.Request.Context(), id, req.Name, req.Country)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toAuthorResponse(a))
}

// DeleteAuthor 删除作者
// @Summary      删除作者
// @Tags         作者
// @Param        id path int true "作者ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.authorService.DeleteAuthor(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// toAuthorResponse 领域实体 → HTTP响应
func toAuthorResponse(a *author.Author) *dto.AuthorResponse {
	return &dto.AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Country:   a.Country,
		CreatedAt: a.CreatedAt.Format(timeLayout),
		UpdatedAt: a.UpdatedAt.Format(timeLayout),
	}
}
