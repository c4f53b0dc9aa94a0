// Package domain 通知服务的领域模型
package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// NotificationType 通知类型
type NotificationType string

const (
	NotificationTypeEmail NotificationType = "EMAIL" // 邮件通知
)

// NotificationStatus 通知状态
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification 通知实体
type Notification struct {
	gorm.Model
	// NotificationID 通知 ID
	NotificationID string `gorm:"column:notification_id;type:varchar(36);uniqueIndex;not null" json:"notification_id"`
	// UserID 用户 ID
	UserID string `gorm:"column:user_id;type:varchar(36);index;not null" json:"user_id"`
	// Type 通知类型
	Type NotificationType `gorm:"column:type;type:varchar(20);not null" json:"type"`
	// Subject 通知主题
	Subject string `gorm:"column:subject;type:varchar(200)" json:"subject"`
	// Content 通知内容
	Content string `gorm:"column:content;type:text" json:"content"`
	// Target 通知目标（邮箱地址）
	Target string `gorm:"column:target;type:varchar(100);not null" json:"target"`
	// Status 通知状态
	Status NotificationStatus `gorm:"column:status;type:varchar(20);index;not null;default:'PENDING'" json:"status"`
	// ErrorMessage 错误信息
	ErrorMessage string `gorm:"column:error_message;type:text" json:"error_message"`
	// SentAt 发送时间
	SentAt *time.Time `gorm:"column:sent_at;type:datetime" json:"sent_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// NotificationRepository 通知仓储接口
type NotificationRepository interface {
	// 保存通知
	Save(ctx context.Context, notification *Notification) error
	// 获取用户通知历史
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Notification, int64, error)
}

// Sender 通知发送接口
type Sender interface {
	Send(ctx context.Context, target string, subject string, content string) error
}
