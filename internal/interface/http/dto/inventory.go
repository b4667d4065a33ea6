package dto

// SetStockRequest HTTP库存修正请求(管理员)
// in_stock允许为0(全部借出/下架前清零),不允许为负
type SetStockRequest struct {
	InStock *int `json:"in_stock" binding:"required,min=0" example:"5"`
}

// InventoryResponse HTTP库存响应
type InventoryResponse struct {
	ID        uint   `json:"id" example:"1"`
	BookID    uint   `json:"book_id" example:"1"`
	InStock   int    `json:"in_stock" example:"4"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// StockResponse HTTP单书库存查询响应(走Redis读缓存)
type StockResponse struct {
	BookID  uint `json:"book_id" example:"1"`
	InStock int  `json:"in_stock" example:"4"`
}
