package dto

// AuthorRequest HTTP作者创建/更新请求
type AuthorRequest struct {
	Name    string `json:"name" binding:"required,max=100" example:"钱锺书"`
	Country string `json:"country" binding:"max=100" example:"中国"`
}

// AuthorResponse HTTP作者响应
type AuthorResponse struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"钱锺书"`
	Country   string `json:"country" example:"中国"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15 10:30:00"`
}
