package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nadia/library/internal/domain/inventory"
	apperrors "github.com/nadia/library/pkg/errors"
)

// StockStore 库存读缓存
// 设计说明：
// 1. 实现domain/inventory定义的StockCache接口
// 2. 只加速公开查询接口的读路径，借阅准入判断永远走数据库事务
// 3. Key设计：stock:{book_id}，使用冒号分隔命名空间
// 4. 库存变更（借出、归还、添加、修正）后统一Invalidate，
//    短TTL兜底缓存失效消息丢失的情况
type StockStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStockStore 创建库存缓存
func NewStockStore(client *redis.Client, ttl time.Duration) *StockStore {
	return &StockStore{client: client, ttl: ttl}
}

// GetStock 读取缓存的库存数
// 未命中返回ok=false，由调用方回源数据库
func (s *StockStore) GetStock(ctx context.Context, bookID uint) (int, bool, error) {
	key := stockKey(bookID)

	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil // 缓存未命中
		}
		return 0, false, apperrors.Wrap(err, "读取库存缓存失败")
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		// 脏数据当作未命中处理，顺手删掉
		s.client.Del(ctx, key)
		return 0, false, nil
	}

	return count, true, nil
}

// SetStock 写入缓存（带TTL）
func (s *StockStore) SetStock(ctx context.Context, bookID uint, count int) error {
	key := stockKey(bookID)

	if err := s.client.Set(ctx, key, strconv.Itoa(count), s.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入库存缓存失败")
	}

	return nil
}

// Invalidate 库存变更后使缓存失效
func (s *StockStore) Invalidate(ctx context.Context, bookID uint) error {
	key := stockKey(bookID)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return apperrors.Wrap(err, "删除库存缓存失败")
	}

	return nil
}

// stockKey 生成库存缓存Key
func stockKey(bookID uint) string {
	return fmt.Sprintf("stock:%d", bookID)
}

// 接口实现检查
var _ inventory.StockCache = (*StockStore)(nil)
