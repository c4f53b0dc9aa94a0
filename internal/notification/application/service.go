// Package application 通知应用服务
package application

import (
	"context"
	"errors"
	"time"

	"github.com/bearingmart/storefront/internal/notification/domain"
	"github.com/bearingmart/storefront/pkg/logger"
	"github.com/google/uuid"
)

// ErrNoRecipient 未提供收件人邮箱
var ErrNoRecipient = errors.New("no recipient email")

// NotificationService 通知应用服务
// 每次发送都先落库为 PENDING，发送后更新为 SENT 或 FAILED
type NotificationService struct {
	repo   domain.NotificationRepository
	sender domain.Sender
}

// NewNotificationService 创建通知应用服务
func NewNotificationService(repo domain.NotificationRepository, sender domain.Sender) *NotificationService {
	return &NotificationService{repo: repo, sender: sender}
}

// SendOrderConfirmation 发送订单确认邮件
func (s *NotificationService) SendOrderConfirmation(ctx context.Context, c OrderConfirmation) error {
	if c.Email == "" {
		return ErrNoRecipient
	}
	subject, content := buildConfirmationEmail(c)
	return s.send(ctx, c.UserID, c.Email, subject, content)
}

// SendStatusUpdate 发送订单状态变更邮件
func (s *NotificationService) SendStatusUpdate(ctx context.Context, u OrderStatusUpdate) error {
	if u.Email == "" {
		logger.Info(ctx, "Skipping status update email, no recipient on order",
			"order_number", u.OrderNumber,
			"user_id", u.UserID,
		)
		return nil
	}
	subject, content := buildStatusUpdateEmail(u)
	return s.send(ctx, u.UserID, u.Email, subject, content)
}

// GetHistory 获取用户通知历史
func (s *NotificationService) GetHistory(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *NotificationService) send(ctx context.Context, userID, target, subject, content string) error {
	notification := &domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         userID,
		Type:           domain.NotificationTypeEmail,
		Subject:        subject,
		Content:        content,
		Target:         target,
		Status:         domain.NotificationStatusPending,
	}

	if err := s.repo.Save(ctx, notification); err != nil {
		return err
	}

	sendErr := s.sender.Send(ctx, target, subject, content)
	if sendErr != nil {
		notification.Status = domain.NotificationStatusFailed
		notification.ErrorMessage = sendErr.Error()
	} else {
		notification.Status = domain.NotificationStatusSent
		now := time.Now()
		notification.SentAt = &now
	}

	if err := s.repo.Save(ctx, notification); err != nil {
		logger.Error(ctx, "Failed to update notification status",
			"notification_id", notification.NotificationID,
			"error", err,
		)
	}

	return sendErr
}
