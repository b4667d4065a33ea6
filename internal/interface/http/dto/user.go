package dto

// UserRequest HTTP读者注册/更新请求
// 邮箱格式由binding校验,唯一性由服务层与数据库唯一索引保证
type UserRequest struct {
	Name    string `json:"name" binding:"required,max=100" example:"方鸿渐"`
	Address string `json:"address" binding:"max=255" example:"上海市徐汇区"`
	Email   string `json:"email" binding:"required,email,max=100" example:"hongjian@example.com"`
}

// UserResponse HTTP读者响应
type UserResponse struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"方鸿渐"`
	Address   string `json:"address" example:"上海市徐汇区"`
	Email     string `json:"email" example:"hongjian@example.com"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15 10:30:00"`
}
