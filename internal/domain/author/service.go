package author

import (
	"context"
)

// Service 作者领域服务接口
// 说明:作者是纯档案数据,服务层只做仓储透传,不包含跨实体业务规则
type Service interface {
	// ListAuthors 查询全部作者
	ListAuthors(ctx context.Context) ([]*Author, error)

	// GetAuthorByID 根据ID获取作者
	GetAuthorByID(ctx context.Context, id uint) (*Author, error)

	// CreateAuthor 创建作者
	CreateAuthor(ctx context.Context, name, country string) (*Author, error)

	// UpdateAuthor 更新作者档案
	UpdateAuthor(ctx context.Context, id uint, name, country string) (*Author, error)

	// DeleteAuthor 删除作者
	DeleteAuthor(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService 创建作者领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListAuthors 查询全部作者
func (s *service) ListAuthors(ctx context.Context) ([]*Author, error) {
	return s.repo.FindAll(ctx)
}

// GetAuthorByID 根据ID获取作者
func (s *service) GetAuthorByID(ctx context.Context, id uint) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateAuthor 创建作者
func (s *service) CreateAuthor(ctx context.Context, name, country string) (*Author, error) {
	a := NewAuthor(name, country)
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAuthor 更新作者档案
func (s *service) UpdateAuthor(ctx context.Context, id uint, name, country string) (*Author, error) {
	// 1. 查询作者
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 更新并持久化
	a.UpdateInfo(name, country)
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAuthor 删除作者
func (s *service) DeleteAuthor(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
