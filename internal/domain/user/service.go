package user

import (
	"context"
	"errors"
	"regexp"
)

// Service 读者领域服务
// 设计说明：
// 1. Service封装读者相关的业务规则（邮箱格式、邮箱唯一性）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// ListUsers 查询全部读者
	ListUsers(ctx context.Context) ([]*User, error)

	// GetUserByID 根据ID获取读者
	GetUserByID(ctx context.Context, id uint) (*User, error)

	// RegisterUser 登记新读者
	RegisterUser(ctx context.Context, name, address, email string) (*User, error)

	// UpdateUser 更新读者档案
	UpdateUser(ctx context.Context, id uint, name, address, email string) (*User, error)

	// DeleteUser 删除读者
	DeleteUser(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService 创建读者领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListUsers 查询全部读者
func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.FindAll(ctx)
}

// GetUserByID 根据ID获取读者
func (s *service) GetUserByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// RegisterUser 登记新读者
// 业务规则：
// 1. 邮箱格式校验
// 2. 邮箱唯一性：先查后插（并发窗口由数据库UNIQUE索引兜底，
//    Repository会把Duplicate Entry转换为ErrEmailDuplicate）
func (s *service) RegisterUser(ctx context.Context, name, address, email string) (*User, error) {
	// 1. 邮箱格式校验
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	// 2. 邮箱查重（先查后插）
	if err := s.checkEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	// 3. 创建读者实体并持久化
	u := NewUser(name, address, email)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// UpdateUser 更新读者档案
// 业务规则：改邮箱时同样要做唯一性校验（允许保留自己原来的邮箱）
func (s *service) UpdateUser(ctx context.Context, id uint, name, address, email string) (*User, error) {
	// 1. 查询读者
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 邮箱校验
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := s.checkEmailFree(ctx, email, id); err != nil {
		return nil, err
	}

	// 3. 更新并持久化
	u.UpdateInfo(name, address, email)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser 删除读者
func (s *service) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// checkEmailFree 校验邮箱未被其他读者占用
// selfID为0表示新建场景
func (s *service) checkEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil // 邮箱空闲
		}
		return err
	}
	if existing.ID != selfID {
		return ErrEmailDuplicate
	}
	return nil
}

// isValidEmail 邮箱格式校验
// 简单的正则校验，生产环境可使用更严格的RFC 5322标准
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}
