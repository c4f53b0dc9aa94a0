// Package consumer Kafka 事件消费
package consumer

import (
	"context"
	"errors"
	"time"

	"github.com/bearingmart/storefront/internal/notification/application"
	"github.com/bearingmart/storefront/pkg/logger"
	"github.com/bearingmart/storefront/pkg/mq"
)

// TopicOrderStatusChanged 订单状态变更事件主题
const TopicOrderStatusChanged = "order.status.changed"

// statusChangedEvent 订单上下文发布的状态变更事件载荷
type statusChangedEvent struct {
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	Timestamp   time.Time `json:"timestamp"`
}

// StatusConsumer 消费订单状态变更事件并发送通知邮件
type StatusConsumer struct {
	consumer *mq.KafkaConsumer
	service  *application.NotificationService
}

// NewStatusConsumer 创建状态变更事件消费者
func NewStatusConsumer(cfg mq.KafkaConfig, service *application.NotificationService) (*StatusConsumer, error) {
	consumer, err := mq.NewConsumer(cfg, TopicOrderStatusChanged)
	if err != nil {
		return nil, err
	}
	return &StatusConsumer{consumer: consumer, service: service}, nil
}

// Run 消费循环，ctx 取消后退出
func (sc *StatusConsumer) Run(ctx context.Context) {
	logger.Info(ctx, "Status consumer started", "topic", TopicOrderStatusChanged)

	for {
		msg, err := sc.consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				logger.Info(ctx, "Status consumer stopped")
				return
			}
			logger.Error(ctx, "Failed to read message", "topic", TopicOrderStatusChanged, "error", err)
			continue
		}

		var event statusChangedEvent
		if err := msg.UnmarshalPayload(&event); err != nil {
			logger.Error(ctx, "Failed to decode status changed event", "error", err)
			continue
		}

		if err := sc.service.SendStatusUpdate(ctx, application.OrderStatusUpdate{
			OrderNumber: event.OrderNumber,
			UserID:      event.UserID,
			Email:       event.Email,
			OldStatus:   event.OldStatus,
			NewStatus:   event.NewStatus,
		}); err != nil {
			logger.Error(ctx, "Failed to send status update email",
				"order_number", event.OrderNumber,
				"error", err,
			)
		}
	}
}

// Close 关闭底层消费者
func (sc *StatusConsumer) Close() error {
	return sc.consumer.Close()
}
