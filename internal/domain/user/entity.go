package user

import (
	"time"
)

// User 读者实体（聚合根）
// DDD设计说明：
// 1. User是读者聚合的根实体，代表一名可以借书的注册读者
// 2. Email是业务唯一标识（服务层先查重，数据库层UNIQUE索引兜底）
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID        uint
	Name      string // 姓名
	Address   string // 地址
	Email     string // 邮箱（唯一）
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新读者（工厂方法）
func NewUser(name, address, email string) *User {
	now := time.Now()
	return &User{
		Name:      name,
		Address:   address,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateInfo 更新读者档案（领域行为）
func (u *User) UpdateInfo(name, address, email string) {
	u.Name = name
	u.Address = address
	u.Email = email
	u.UpdatedAt = time.Now()
}
