package domain

import "context"

// CartRepository 购物车仓储接口
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Cart, error)
	// Save 保存购物车及其条目，只做新增和更新，不删除缺失条目
	Save(ctx context.Context, cart *Cart) error
	// RemoveItem 删除购物车中指定商品的条目行
	RemoveItem(ctx context.Context, cartID uint, productID string) error
	Delete(ctx context.Context, userID string) error
}

// EventPublisher 购物车事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
