package redis

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/nadia/library/internal/domain/inventory"
	"github.com/nadia/library/pkg/circuitbreaker"
	"github.com/nadia/library/pkg/metrics"
)

// BreakerStockCache 带熔断保护的库存缓存
// 设计说明:
// 1. 装饰器模式：包装StockStore，对外仍是inventory.StockCache
// 2. Redis连续故障时熔断器打开，所有缓存操作快速返回（<1ms），
//    读路径退化为"缓存未命中"直连数据库，写路径静默跳过
// 3. 熔断期间Invalidate被跳过，可能残留旧值，由缓存短TTL兜底
// 4. 状态变化和请求结果上报Prometheus指标
type BreakerStockCache struct {
	inner inventory.StockCache
	cb    *circuitbreaker.CircuitBreaker
}

// NewBreakerStockCache 为库存缓存套上熔断器
//
// 默认策略：
// - 连续失败5次打开熔断器
// - 打开30秒后进入半开探测
func NewBreakerStockCache(inner inventory.StockCache) *BreakerStockCache {
	cb := circuitbreaker.NewCircuitBreaker("redis-stock-cache", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("熔断器[%s]状态变化: %s -> %s", name, from, to)
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
	})

	return &BreakerStockCache{inner: inner, cb: cb}
}

// GetStock 读取缓存的库存数
// 熔断器打开时当作未命中处理，调用方回源数据库
func (b *BreakerStockCache) GetStock(ctx context.Context, bookID uint) (int, bool, error) {
	var (
		count int
		ok    bool
	)

	err := b.cb.Execute(func() error {
		var err error
		count, ok, err = b.inner.GetStock(ctx, bookID)
		return err
	})
	b.observe(err)

	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpenState) {
			return 0, false, nil
		}
		return 0, false, err
	}

	return count, ok, nil
}

// SetStock 写入缓存
// 回填失败本来就是非致命的，熔断期间静默跳过
func (b *BreakerStockCache) SetStock(ctx context.Context, bookID uint, count int) error {
	err := b.cb.Execute(func() error {
		return b.inner.SetStock(ctx, bookID, count)
	})
	b.observe(err)

	if errors.Is(err, circuitbreaker.ErrOpenState) {
		return nil
	}
	return err
}

// Invalidate 使缓存失效
// 熔断期间跳过，旧值最多存活一个TTL周期
func (b *BreakerStockCache) Invalidate(ctx context.Context, bookID uint) error {
	err := b.cb.Execute(func() error {
		return b.inner.Invalidate(ctx, bookID)
	})
	b.observe(err)

	if errors.Is(err, circuitbreaker.ErrOpenState) {
		return nil
	}
	return err
}

// observe 上报熔断器请求指标
func (b *BreakerStockCache) observe(err error) {
	result := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = "rejected"
	case err != nil:
		result = "failure"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{
		"name":   b.cb.Name(),
		"result": result,
	})
}

// 接口实现检查
var _ inventory.StockCache = (*BreakerStockCache)(nil)
