package domain

import "time"

// TopicOrderStatusChanged 订单状态变更事件主题
const TopicOrderStatusChanged = "order.status.changed"

// TopicOrderCreated 订单创建事件主题
const TopicOrderCreated = "order.created"

// OrderCreatedEvent 订单创建事件
type OrderCreatedEvent struct {
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	Total       string    `json:"total"`
	ItemCount   int       `json:"item_count"`
	Timestamp   time.Time `json:"timestamp"`
}

// OrderStatusChangedEvent 订单状态变更事件
// 通知服务消费该事件并向客户发送状态变更邮件
type OrderStatusChangedEvent struct {
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email,omitempty"`
	OldStatus   Status    `json:"old_status"`
	NewStatus   Status    `json:"new_status"`
	Timestamp   time.Time `json:"timestamp"`
}
