package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 只负责单聚合内的查询与更新
// 2. 跨聚合的添加/删除流程(涉及库存、借阅)在application层编排
type Service interface {
	// ListBooks 查询全部图书
	ListBooks(ctx context.Context) ([]*Book, error)

	// GetBookByID 根据ID获取图书
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 更新图书条目
	// 业务规则:authorID与title整体替换(PUT的整体替换语义)
	UpdateBook(ctx context.Context, id uint, authorID uint, title string) (*Book, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListBooks 查询全部图书
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.FindAll(ctx)
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书条目
func (s *service) UpdateBook(ctx context.Context, id uint, authorID uint, title string) (*Book, error) {
	// 1. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 更新并持久化
	b.UpdateInfo(authorID, title)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
