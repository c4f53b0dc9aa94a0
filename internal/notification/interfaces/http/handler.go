// Package http 通知 HTTP 接口
package http

import (
	"strconv"

	"github.com/bearingmart/storefront/internal/notification/application"
	"github.com/bearingmart/storefront/pkg/logger"
	"github.com/bearingmart/storefront/pkg/response"
	"github.com/gin-gonic/gin"
)

// NotificationHandler HTTP 处理器
type NotificationHandler struct {
	app *application.NotificationService
}

// NewNotificationHandler 创建 HTTP 处理器实例
func NewNotificationHandler(app *application.NotificationService) *NotificationHandler {
	return &NotificationHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/notifications")
	{
		api.GET("/:user_id", h.GetHistory)
	}
}

// GetHistory 获取用户通知历史
func (h *NotificationHandler) GetHistory(c *gin.Context) {
	userID := c.Param("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	notifications, total, err := h.app.GetHistory(c.Request.Context(), userID, limit, offset)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to get notification history", "user_id", userID, "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"notifications": notifications, "total": total})
}
