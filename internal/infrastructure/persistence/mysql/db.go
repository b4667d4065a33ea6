package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nadia/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AuthorModel{},
		&UserModel{},
		&BookModel{},
		&InventoryModel{},
		&LoanModel{},
	)
}

// =========================================
// GORM数据模型
// =========================================
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. internal/domain下的实体是领域模型，不依赖GORM
// 3. Repository负责两者之间的转换
// 4. 全部使用硬删除：借阅记录的"存在即在借"语义要求归还时真正删除，
//    图书/库存的删除流程也依赖唯一索引在删除后立即可复用

// AuthorModel GORM作者模型
type AuthorModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;comment:姓名"`
	Country   string `gorm:"size:100;comment:国籍"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// UserModel GORM读者模型
// Email有唯一索引：服务层先查后插只是友好提示，索引才是并发下的最终保证
type UserModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;comment:姓名"`
	Address   string `gorm:"size:255;comment:地址"`
	Email     string `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// (author_id, title)有复合唯一索引：同一作者的同名书是同一个条目，
// 重复添加走库存+1而不是新建条目
type BookModel struct {
	ID        uint   `gorm:"primaryKey"`
	AuthorID  uint   `gorm:"uniqueIndex:idx_author_title;not null;comment:作者ID"`
	Title     string `gorm:"uniqueIndex:idx_author_title;size:200;not null;comment:书名"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// InventoryModel GORM库存模型
// 设计说明：
// 1. book_id唯一索引：每本书恰好一条库存记录
// 2. in_stock的下限保护靠条件UPDATE（WHERE in_stock > 0），不靠CHECK约束
type InventoryModel struct {
	ID        uint `gorm:"primaryKey"`
	BookID    uint `gorm:"uniqueIndex;not null;comment:图书ID"`
	InStock   int  `gorm:"not null;default:0;comment:在馆可借副本数"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (InventoryModel) TableName() string {
	return "inventories"
}

// LoanModel GORM借阅模型
// 设计说明：
// 1. 无软删除：归还=DELETE，记录的存在本身就是"在借"状态
// 2. book_id/user_id普通索引：图书删除前要查在借记录，读者查询要按人过滤
type LoanModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"index;not null;comment:图书ID"`
	UserID    uint      `gorm:"index;not null;comment:读者ID"`
	Status    string    `gorm:"type:varchar(20);not null;comment:借阅状态(NEW_LOAN/RENEWAL)"`
	LoanDate  time.Time `gorm:"not null;comment:借出日期"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (LoanModel) TableName() string {
	return "loans"
}
