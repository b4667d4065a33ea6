package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nadia/library/internal/domain/loan"
	apperrors "github.com/nadia/library/pkg/errors"
)

// loanRepository 借阅仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/loan/repository.go定义的接口
// 2. Create/Delete必须能参与事务(与库存增减配对),使用getDB(ctx)
// 3. 归还=硬删除,记录的存在本身就是"在借"状态
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// Create 创建借阅记录
// 教学要点:必须使用getDB(ctx)参与事务,与库存扣减保持原子
func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	model := &LoanModel{
		BookID:   l.BookID,
		UserID:   l.UserID,
		Status:   string(l.Status),
		LoanDate: l.LoanDate,
	}

	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找借阅记录
func (r *loanRepository) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var model LoanModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toLoanEntity(&model), nil
}

// FindAll 查询全部在借记录
func (r *loanRepository) FindAll(ctx context.Context) ([]*loan.Loan, error) {
	var models []LoanModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询借阅列表失败")
	}

	loans := make([]*loan.Loan, len(models))
	for i, model := range models {
		loans[i] = toLoanEntity(&model)
	}
	return loans, nil
}

// ExistsByBookID 判断某本书是否有副本在借
// 图书删除前的冲突检查
func (r *loanRepository) ExistsByBookID(ctx context.Context, bookID uint) (bool, error) {
	count, err := r.CountByBookID(ctx, bookID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByBookID 统计某本书当前在借的副本数
func (r *loanRepository) CountByBookID(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&LoanModel{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "查询在借记录失败")
	}
	return count, nil
}

// Update 更新借阅记录(续借:状态变更+借出日期重置)
func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	model := &LoanModel{
		ID:        l.ID,
		BookID:    l.BookID,
		UserID:    l.UserID,
		Status:    string(l.Status),
		LoanDate:  l.LoanDate,
		CreatedAt: l.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新借阅记录失败")
	}

	l.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除借阅记录(归还,硬删除)
// 教学要点:必须使用getDB(ctx)参与事务,与库存回增保持原子
func (r *loanRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)
	result := db.Delete(&LoanModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除借阅记录失败")
	}

	if result.RowsAffected == 0 {
		return loan.ErrLoanNotFound
	}

	return nil
}

// toLoanEntity GORM模型 → 领域实体
func toLoanEntity(model *LoanModel) *loan.Loan {
	return &loan.Loan{
		ID:        model.ID,
		BookID:    model.BookID,
		UserID:    model.UserID,
		Status:    loan.Status(model.Status),
		LoanDate:  model.LoanDate,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
