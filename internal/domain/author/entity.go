package author

import (
	"time"
)

// Author 作者实体(聚合根)
// DDD设计说明:
// 1. Author是作者聚合的根实体,只包含基础档案信息
// 2. 图书通过AuthorID引用作者,删除作者前不做级联检查(图书侧负责引用完整性)
// 3. 领域实体不依赖GORM tag(infrastructure层的Repository实现时会处理映射)
type Author struct {
	ID        uint
	Name      string // 姓名
	Country   string // 国籍
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor 创建新作者(工厂方法)
func NewAuthor(name, country string) *Author {
	now := time.Now()
	return &Author{
		Name:      name,
		Country:   country,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateInfo 更新作者档案(领域行为)
func (a *Author) UpdateInfo(name, country string) {
	a.Name = name
	a.Country = country
	a.UpdatedAt = time.Now()
}
