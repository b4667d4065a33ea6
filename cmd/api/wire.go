//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/nadia/library/internal/application/book"
	apploan "github.com/nadia/library/internal/application/loan"
	"github.com/nadia/library/internal/domain/author"
	"github.com/nadia/library/internal/domain/book"
	"github.com/nadia/library/internal/domain/inventory"
	"github.com/nadia/library/internal/domain/loan"
	"github.com/nadia/library/internal/domain/user"
	"github.com/nadia/library/internal/infrastructure/config"
	"github.com/nadia/library/internal/infrastructure/persistence/mysql"
	"github.com/nadia/library/internal/infrastructure/persistence/redis"
	"github.com/nadia/library/internal/interface/http/handler"
	"github.com/nadia/library/internal/interface/http/middleware"
	"github.com/nadia/library/pkg/mq"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load, // 加载配置文件
	mysql.NewDB, // 创建MySQL连接
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewAuthorRepository,    // 作者仓储
	mysql.NewUserRepository,      // 读者仓储
	mysql.NewBookRepository,      // 图书仓储
	mysql.NewInventoryRepository, // 库存仓储
	mysql.NewLoanRepository,      // 借阅仓储
	mysql.NewTxManager,           // 事务管理器
	provideTransactor,            // *TxManager → Transactor接口
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	author.NewService,    // 作者领域服务
	user.NewService,      // 读者领域服务
	book.NewService,      // 图书领域服务
	inventory.NewService, // 库存领域服务
	provideLoanService,   // 借阅领域服务（需要从config提取借阅期限）
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewAddBookUseCase,    // 添加图书用例
	appbook.NewRemoveBookUseCase, // 删除图书用例
	apploan.NewCreateLoanUseCase, // 借书用例
	provideRenewLoanUseCase,      // 续借用例（需要从config提取借阅期限）
	apploan.NewReturnLoanUseCase, // 归还用例
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewAuthorHandler,    // 作者处理器
	handler.NewUserHandler,      // 读者处理器
	handler.NewBookHandler,      // 图书处理器
	handler.NewInventoryHandler, // 库存处理器
	handler.NewLoanHandler,      // 借阅处理器
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 有些依赖的构造参数不是直接的类型（可选组件、从Config提取字段），
// Wire无法自动推导，需要手动编写Provider

// provideTransactor 事务管理器以接口形式注入应用层
func provideTransactor(tm *mysql.TxManager) apploan.Transactor {
	return tm
}

// provideLoanService 从配置提取借阅期限创建借阅领域服务
func provideLoanService(repo loan.Repository, cfg *config.Config) loan.Service {
	return loan.NewService(repo, cfg.Loan.PeriodDays)
}

// provideRenewLoanUseCase 从配置提取借阅期限创建续借用例
func provideRenewLoanUseCase(repo loan.Repository, cfg *config.Config, publisher apploan.EventPublisher) *apploan.RenewLoanUseCase {
	return apploan.NewRenewLoanUseCase(repo, cfg.Loan.PeriodDays, publisher)
}

// provideStockCache 创建带熔断保护的库存缓存
// Redis不可用时返回nil，调用方直连数据库
func provideStockCache(cfg *config.Config) inventory.StockCache {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil
	}
	return redis.NewBreakerStockCache(
		redis.NewStockStore(client, cfg.Redis.StockCacheTTL),
	)
}

// provideEventPublisher 创建借阅事件发布器
// mq.enabled为false时返回nil，借阅事件不发布
func provideEventPublisher(cfg *config.Config) (apploan.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideGinEngine 创建并配置Gin引擎
// 路由注册需要所有Handler，Wire会自动注入
func provideGinEngine(
	cfg *config.Config,
	authorHandler *handler.AuthorHandler,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	inventoryHandler *handler.InventoryHandler,
	loanHandler *handler.LoanHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())

	// Swagger文档路由
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	// 生产环境建议禁用或添加访问控制
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, authorHandler, userHandler, bookHandler, inventoryHandler, loanHandler)

	return r
}

// ========================================
// Wire Injector (依赖注入器)
// ========================================

// InitializeApp 初始化整个应用
//
// wire.Build 告诉Wire需要哪些Provider来构建*gin.Engine，
// Wire会自动分析依赖链并按正确顺序调用所有构造函数：
//
// *gin.Engine → *handler.LoanHandler → *apploan.CreateLoanUseCase
//   → loan.Repository → *gorm.DB → *config.Config
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		// 基础设施层
		infrastructureSet,

		// 仓储层
		repositorySet,

		// 可选组件（缓存、消息）
		provideStockCache,
		provideEventPublisher,

		// 领域层
		domainSet,

		// 应用层
		applicationSet,

		// 接口层
		handlerSet,

		// Gin引擎
		provideGinEngine,
	)

	// 占位返回值，实际代码由wire_gen.go生成
	return nil, nil
}
