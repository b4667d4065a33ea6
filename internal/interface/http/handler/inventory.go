package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nadia/library/internal/domain/inventory"
	"github.com/nadia/library/internal/interface/http/dto"
	apperrors "github.com/nadia/library/pkg/errors"
	"github.com/nadia/library/pkg/response"
)

// InventoryHandler 库存HTTP处理器
// 只读查询+管理员修正;借阅流程的扣减/回补不走这里
type InventoryHandler struct {
	inventoryService inventory.Service
}

// NewInventoryHandler 创建库存处理器
func NewInventoryHandler(inventoryService inventory.Service) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// ListInventory 查询库存列表
// @Summary      查询库存列表
// @Tags         库存
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.InventoryResponse}
// @Router       /api/v1/inventory [get]
func (h *InventoryHandler) ListInventory(c *gin.Context) {
	invs, err := h.inventoryService.ListInventory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]*dto.InventoryResponse, len(invs))
	for i, inv := range invs {
		out[i] = toInventoryResponse(inv)
	}
	response.Success(c, out)
}

// GetInventory 查询库存记录详情
// @Summary      查询库存记录详情
// @Tags         库存
// @Produce      json
// @Param        id path int true "库存记录ID"
// @Success      200 {object} response.Response{data=dto.InventoryResponse}
// @Failure      404 {object} response.Response "库存记录不存在"
// @Router       /api/v1/inventory/{id} [get]
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	inv, err := h.inventoryService.GetInventoryByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toInventoryResponse(inv))
}

// GetStockOfBook 查询某本书的在馆副本数
// @Summary      查询某本书的在馆副本数
// @Description  读路径走Redis缓存,未命中回源数据库
// @Tags         库存
// @Produce      json
// @Param        bookId path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.StockResponse}
// @Failure      404 {object} response.Response "库存记录不存在"
// @Router       /api/v1/inventory/book/{bookId}/stock [get]
func (h *InventoryHandler) GetStockOfBook(c *gin.Context) {
	bookID, ok := parseBookIDParam(c)
	if !ok {
		return
	}

	count, err := h.inventoryService.StockOf(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.StockResponse{BookID: bookID, InStock: count})
}

// SetStockOfBook 管理员修正库存
// @Summary      管理员修正库存
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        bookId path int true "图书ID"
// @Param        request body dto.SetStockRequest true "库存数"
// @Success      200 {object} response.Response{data=dto.InventoryResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "库存记录不存在"
// @Router       /api/v1/inventory/book/{bookId}/stock [put]
func (h *InventoryHandler) SetStockOfBook(c *gin.Context) {
	bookID, ok := parseBookIDParam(c)
	if !ok {
		return
	}

	var req dto.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	inv, err := h.inventoryService.SetStockByBookID(c.Request.Context(), bookID, *req.InStock)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toInventoryResponse(inv))
}

// parseBookIDParam 解析路径参数:bookId
func parseBookIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("bookId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的图书ID: "+raw)
		return 0, false
	}
	return uint(id), true
}

// toInventoryResponse 领域实体 → HTTP响应
func toInventoryResponse(inv *inventory.Inventory) *dto.InventoryResponse {
	return &dto.InventoryResponse{
		ID:        inv.ID,
		BookID:    inv.BookID,
		InStock:   inv.InStock,
		UpdatedAt: inv.UpdatedAt.Format(timeLayout),
	}
}
