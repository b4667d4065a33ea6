package dto

// AddBookRequest HTTP添加图书请求
// (author_id, title)已存在时本次添加视为新进一个副本(库存+1),
// 不存在时新建条目,copies为初始副本数(缺省1)
type AddBookRequest struct {
	AuthorID uint   `json:"author_id" binding:"required" example:"1"`
	Title    string `json:"title" binding:"required,max=200" example:"围城"`
	Copies   int    `json:"copies" binding:"omitempty,min=1" example:"3"`
}

// UpdateBookRequest HTTP更新图书请求
type UpdateBookRequest struct {
	AuthorID uint   `json:"author_id" binding:"required" example:"1"`
	Title    string `json:"title" binding:"required,max=200" example:"围城"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID        uint   `json:"id" example:"1"`
	AuthorID  uint   `json:"author_id" example:"1"`
	Title     string `json:"title" example:"围城"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15 10:30:00"`
}
