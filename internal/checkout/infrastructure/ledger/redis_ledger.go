// Package ledger 基于 Redis 的结算台账实现
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bearingmart/storefront/internal/checkout/domain"
	"github.com/bearingmart/storefront/pkg/cache"
)

const (
	processedKeyPrefix = "checkout:processed:"
	emailedKeyPrefix   = "checkout:emailed:"
	shippingKeyPrefix  = "checkout:shipping:"

	// 台账标记保留 30 天，超过支付回跳重试窗口即可
	markTTL = 30 * 24 * time.Hour
	// 收货地址快照保留 24 小时，覆盖一次结算会话
	shippingTTL = 24 * time.Hour
)

// RedisLedger 结算台账的 Redis 实现
type RedisLedger struct {
	cache *cache.RedisCache
}

// NewRedisLedger 创建结算台账
func NewRedisLedger(c *cache.RedisCache) *RedisLedger {
	return &RedisLedger{cache: c}
}

// HasProcessed 订单号是否已完成结算处理
func (l *RedisLedger) HasProcessed(ctx context.Context, orderNumber string) (bool, error) {
	val, err := l.cache.Get(ctx, processedKeyPrefix+orderNumber)
	if err != nil {
		return false, fmt.Errorf("failed to read processed mark: %w", err)
	}
	return val != "", nil
}

// MarkProcessed 标记订单号已处理，已有标记时保留原有 TTL
func (l *RedisLedger) MarkProcessed(ctx context.Context, orderNumber string) error {
	if _, err := l.cache.SetNX(ctx, processedKeyPrefix+orderNumber, "1", markTTL); err != nil {
		return fmt.Errorf("failed to mark processed: %w", err)
	}
	return nil
}

// HasEmailed 订单号是否已发送确认邮件
func (l *RedisLedger) HasEmailed(ctx context.Context, orderNumber string) (bool, error) {
	val, err := l.cache.Get(ctx, emailedKeyPrefix+orderNumber)
	if err != nil {
		return false, fmt.Errorf("failed to read emailed mark: %w", err)
	}
	return val != "", nil
}

// MarkEmailed 标记订单号已发信，已有标记时保留原有 TTL
func (l *RedisLedger) MarkEmailed(ctx context.Context, orderNumber string) error {
	if _, err := l.cache.SetNX(ctx, emailedKeyPrefix+orderNumber, "1", markTTL); err != nil {
		return fmt.Errorf("failed to mark emailed: %w", err)
	}
	return nil
}

// Put 保存用户收货地址快照
func (l *RedisLedger) Put(ctx context.Context, userID string, addr domain.ShippingAddress) error {
	if err := l.cache.SetJSON(ctx, shippingKeyPrefix+userID, addr, shippingTTL); err != nil {
		return fmt.Errorf("failed to save shipping snapshot: %w", err)
	}
	return nil
}

// Get 读取用户收货地址快照，不存在时返回 nil
func (l *RedisLedger) Get(ctx context.Context, userID string) (*domain.ShippingAddress, error) {
	val, err := l.cache.Get(ctx, shippingKeyPrefix+userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read shipping snapshot: %w", err)
	}
	if val == "" {
		return nil, nil
	}
	var addr domain.ShippingAddress
	if err := json.Unmarshal([]byte(val), &addr); err != nil {
		return nil, fmt.Errorf("failed to decode shipping snapshot: %w", err)
	}
	return &addr, nil
}

// Delete 删除用户收货地址快照
func (l *RedisLedger) Delete(ctx context.Context, userID string) error {
	return l.cache.Delete(ctx, shippingKeyPrefix+userID)
}
