package repository

import (
	"context"
	"fmt"

	"github.com/bearingmart/storefront/internal/notification/domain"
	"github.com/bearingmart/storefront/pkg/logger"
	"gorm.io/gorm"
)

// NotificationRepositoryImpl 通知仓储实现
type NotificationRepositoryImpl struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

// Save 保存通知，已存在时更新
func (nr *NotificationRepositoryImpl) Save(ctx context.Context, notification *domain.Notification) error {
	if err := nr.db.WithContext(ctx).Save(notification).Error; err != nil {
		logger.Error(ctx, "Failed to save notification",
			"notification_id", notification.NotificationID,
			"error", err,
		)
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

// ListByUser 获取用户通知历史
func (nr *NotificationRepositoryImpl) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, int64, error) {
	var notifications []*domain.Notification
	var total int64

	query := nr.db.WithContext(ctx).Model(&domain.Notification{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, total, nil
}
