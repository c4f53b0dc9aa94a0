// Package sender 通知发送实现
package sender

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/bearingmart/storefront/internal/notification/domain"
	"github.com/bearingmart/storefront/pkg/logger"
)

// SMTPSender 邮件发送实现
// host 为空时进入日志模式，只记录不外发，便于本地开发
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPSender 创建邮件发送器
func NewSMTPSender(host, port, username, password, from string) domain.Sender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send 发送邮件
func (s *SMTPSender) Send(ctx context.Context, target string, subject string, content string) error {
	msg := []byte("From: " + s.from + "\r\n" +
		"To: " + target + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		content + "\r\n")

	if s.host == "" {
		logger.Info(ctx, "SMTP not configured, logging email instead",
			"target", target,
			"subject", subject,
		)
		return nil
	}

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	if err := smtp.SendMail(addr, auth, s.from, []string{target}, msg); err != nil {
		logger.Error(ctx, "Failed to send email",
			"target", target,
			"subject", subject,
			"error", err,
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info(ctx, "Email sent", "target", target, "subject", subject)
	return nil
}
