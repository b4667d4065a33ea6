package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

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
	"github.com/nadia/library/pkg/metrics"
	"github.com/nadia/library/pkg/mq"
	"github.com/nadia/library/pkg/response"
	"github.com/nadia/library/pkg/tracing"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go提供编译期生成版本，二者等价）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	fmt.Printf("  - 借阅期限: %d天\n", cfg.Loan.PeriodDays)

	// 2. 初始化Prometheus指标
	metrics.InitMetrics()

	// 3. 初始化链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			log.Fatalf("初始化Tracer失败: %v", err)
		}
		defer shutdown(context.Background())
		fmt.Printf("  - 链路追踪: %s\n", cfg.Tracing.Endpoint)
	}

	// 4. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 5. 初始化Redis库存缓存（可选）
	// Redis不可用时降级运行：库存查询直连数据库
	var stockCache inventory.StockCache
	if redisClient, err := redis.NewClient(cfg); err != nil {
		log.Printf("初始化Redis失败(库存查询将直连数据库): %v", err)
	} else {
		stockCache = redis.NewBreakerStockCache(
			redis.NewStockStore(redisClient, cfg.Redis.StockCacheTTL),
		)
	}

	// 6. 初始化消息发布器（可选）
	var publisher apploan.EventPublisher
	if cfg.MQ.Enabled {
		pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化RabbitMQ失败: %v", err)
		}
		defer pub.Close()
		publisher = pub
		fmt.Printf("  - 借阅事件: %s\n", cfg.MQ.Exchange)
	}

	// 7. 依赖注入（手动组装）
	// 依赖链：Repository ← Service/UseCase ← Handler

	// 基础设施层
	authorRepo := mysql.NewAuthorRepository(db)
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	invRepo := mysql.NewInventoryRepository(db)
	loanRepo := mysql.NewLoanRepository(db)
	txManager := mysql.NewTxManager(db)

	// 领域层
	authorService := author.NewService(authorRepo)
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	inventoryService := inventory.NewService(invRepo, stockCache)
	loanService := loan.NewService(loanRepo, cfg.Loan.PeriodDays)

	// 应用层
	addBookUseCase := appbook.NewAddBookUseCase(authorRepo, bookRepo, invRepo, txManager, stockCache)
	removeBookUseCase := appbook.NewRemoveBookUseCase(bookRepo, loanRepo, invRepo, txManager, stockCache)
	createLoanUseCase := apploan.NewCreateLoanUseCase(loanRepo, bookRepo, userRepo, invRepo, txManager, stockCache, publisher)
	renewLoanUseCase := apploan.NewRenewLoanUseCase(loanRepo, cfg.Loan.PeriodDays, publisher)
	returnLoanUseCase := apploan.NewReturnLoanUseCase(loanRepo, invRepo, txManager, stockCache, publisher)

	// 接口层
	authorHandler := handler.NewAuthorHandler(authorService)
	userHandler := handler.NewUserHandler(userService)
	bookHandler := handler.NewBookHandler(bookService, addBookUseCase, removeBookUseCase)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	loanHandler := handler.NewLoanHandler(loanService, createLoanUseCase, renewLoanUseCase, returnLoanUseCase)

	// 8. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 9. 注册路由
	registerRoutes(r, authorHandler, userHandler, bookHandler, inventoryHandler, loanHandler)

	// 10. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   监控指标: http://localhost%s/metrics\n", addr)
	fmt.Printf("   借书: POST http://localhost%s/api/v1/loans\n", addr)
	fmt.Printf("   续借: PUT  http://localhost%s/api/v1/loans/:id/renew\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	authorHandler *handler.AuthorHandler,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	inventoryHandler *handler.InventoryHandler,
	loanHandler *handler.LoanHandler,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 作者模块
		authors := v1.Group("/authors")
		{
			authors.GET("", authorHandler.ListAuthors)
			authors.GET("/:id", authorHandler.GetAuthor)
			authors.POST("", authorHandler.CreateAuthor)
			authors.PUT("/:id", authorHandler.UpdateAuthor)
			authors.DELETE("/:id", authorHandler.DeleteAuthor)
		}

		// 读者模块
		users := v1.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", userHandler.RegisterUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// 图书模块
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.POST("", bookHandler.AddBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
		}

		// 库存模块
		inv := v1.Group("/inventory")
		{
			inv.GET("", inventoryHandler.ListInventory)
			inv.GET("/:id", inventoryHandler.GetInventory)
			inv.GET("/book/:bookId/stock", inventoryHandler.GetStockOfBook)
			inv.PUT("/book/:bookId/stock", inventoryHandler.SetStockOfBook)
		}

		// 借阅模块（核心业务）
		loans := v1.Group("/loans")
		{
			loans.GET("", loanHandler.ListLoans)
			loans.GET("/late", loanHandler.ListLateLoans)
			loans.GET("/:id", loanHandler.GetLoan)
			loans.POST("", loanHandler.CreateLoan)
			loans.PUT("/:id/renew", loanHandler.RenewLoan)
			loans.DELETE("/:id", loanHandler.ReturnLoan)
		}
	}
}
