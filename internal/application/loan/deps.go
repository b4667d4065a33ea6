package loan

import (
	"context"
)

// Transactor 事务编排接口
// 设计说明:
// 1. 由infrastructure/persistence/mysql.TxManager实现
// 2. application层只依赖接口,单元测试可注入内存假实现
//    (领域仓储接口同理,见usecase_test.go中的fake)
type Transactor interface {
	// Transaction fn内的仓储操作在同一事务中执行
	// fn返回error时回滚,返回nil时提交
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 借阅事件发布接口
// 由pkg/mq.Publisher实现;未配置消息队列时注入nil,事件静默跳过
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}
