package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nadia/library/internal/domain/user"
	apperrors "github.com/nadia/library/pkg/errors"
)

// userRepository 读者仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/user/repository.go定义的接口
// 2. 处理数据库特定的错误(邮箱唯一索引冲突),转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建读者仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建读者
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Name:    u.Name,
		Address: u.Address,
		Email:   u.Email,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		// 邮箱唯一索引冲突:服务层的先查后插在并发下可能漏判,
		// 这里把索引冲突转换成同一个业务错误兜底
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建读者失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找读者
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询读者失败")
	}

	return toUserEntity(&model), nil
}

// FindByEmail 根据邮箱查找读者
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询读者失败")
	}

	return toUserEntity(&model), nil
}

// FindAll 查询全部读者
func (r *userRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询读者列表失败")
	}

	users := make([]*user.User, len(models))
	for i, model := range models {
		users[i] = toUserEntity(&model)
	}
	return users, nil
}

// ExistsByID 判断读者是否存在
func (r *userRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询读者失败")
	}
	return count > 0, nil
}

// Update 更新读者信息
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := &UserModel{
		ID:        u.ID,
		Name:      u.Name,
		Address:   u.Address,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "更新读者失败")
	}

	u.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除读者
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&UserModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除读者失败")
	}

	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:        model.ID,
		Name:      model.Name,
		Address:   model.Address,
		Email:     model.Email,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
