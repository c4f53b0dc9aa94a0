package ledger

import (
	"context"
	"sync"

	"github.com/bearingmart/storefront/internal/checkout/domain"
)

// MemoryLedger 进程内结算台账，适用于单机开发环境
// 进程重启丢失标记，生产环境应使用 RedisLedger
type MemoryLedger struct {
	mu        sync.RWMutex
	processed map[string]struct{}
	emailed   map[string]struct{}
	shipping  map[string]domain.ShippingAddress
}

// NewMemoryLedger 创建进程内台账
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		processed: make(map[string]struct{}),
		emailed:   make(map[string]struct{}),
		shipping:  make(map[string]domain.ShippingAddress),
	}
}

// HasProcessed 订单号是否已完成结算处理
func (l *MemoryLedger) HasProcessed(ctx context.Context, orderNumber string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.processed[orderNumber]
	return ok, nil
}

// MarkProcessed 标记订单号已处理
func (l *MemoryLedger) MarkProcessed(ctx context.Context, orderNumber string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.processed[orderNumber] = struct{}{}
	return nil
}

// HasEmailed 订单号是否已发送确认邮件
func (l *MemoryLedger) HasEmailed(ctx context.Context, orderNumber string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.emailed[orderNumber]
	return ok, nil
}

// MarkEmailed 标记订单号已发信
func (l *MemoryLedger) MarkEmailed(ctx context.Context, orderNumber string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.emailed[orderNumber] = struct{}{}
	return nil
}

// Put 保存用户收货地址快照
func (l *MemoryLedger) Put(ctx context.Context, userID string, addr domain.ShippingAddress) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shipping[userID] = addr
	return nil
}

// Get 读取用户收货地址快照，不存在时返回 nil
func (l *MemoryLedger) Get(ctx context.Context, userID string) (*domain.ShippingAddress, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if addr, ok := l.shipping[userID]; ok {
		return &addr, nil
	}
	return nil, nil
}

// Delete 删除用户收货地址快照
func (l *MemoryLedger) Delete(ctx context.Context, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.shipping, userID)
	return nil
}
