package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book代表馆藏书目中的一个条目(一个书名),不代表具体某本副本
// 2. 副本数量由inventory聚合维护(每个Book对应一条Inventory记录)
// 3. (AuthorID, Title)作为业务唯一标识:重复添加同一本书会增加库存而不是新建条目
type Book struct {
	ID        uint
	AuthorID  uint   // 作者ID(关联Author表)
	Title     string // 书名
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书(工厂方法)
// 参数说明:
// - authorID: 作者ID(需调用方先校验作者存在)
// - title: 书名
func NewBook(authorID uint, title string) *Book {
	now := time.Now()
	return &Book{
		AuthorID:  authorID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateInfo 更新图书条目(领域行为)
func (b *Book) UpdateInfo(authorID uint, title string) {
	b.AuthorID = authorID
	b.Title = title
	b.UpdatedAt = time.Now()
}
