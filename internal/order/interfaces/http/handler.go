// Package http 订单 HTTP 接口
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bearingmart/storefront/internal/order/application"
	"github.com/bearingmart/storefront/internal/order/domain"
	"github.com/bearingmart/storefront/pkg/logger"
	"github.com/bearingmart/storefront/pkg/response"
	"github.com/gin-gonic/gin"
)

// OrderHandler HTTP 处理器
type OrderHandler struct {
	app *application.OrderApplicationService
}

// NewOrderHandler 创建 HTTP 处理器实例
func NewOrderHandler(app *application.OrderApplicationService) *OrderHandler {
	return &OrderHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/orders")
	{
		api.GET("/:order_number", h.GetOrder)
		api.GET("/:order_number/status", h.GetOrderStatus)
		api.GET("", h.ListOrders)
	}

	admin := router.Group("/api/v1/admin/orders")
	{
		admin.PATCH("/:order_number/status", h.TransitionStatus)
	}
}

// GetOrder 获取订单详情
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderNumber := c.Param("order_number")
	order, err := h.app.GetOrder(c.Request.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, application.ErrOrderNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "order not found")
			return
		}
		logger.Error(c.Request.Context(), "Failed to get order", "order_number", orderNumber, "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"order": order})
}

// GetOrderStatus 获取订单状态视图
func (h *OrderHandler) GetOrderStatus(c *gin.Context) {
	orderNumber := c.Param("order_number")
	view, err := h.app.GetOrderStatus(c.Request.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, application.ErrOrderNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "order not found")
			return
		}
		logger.Error(c.Request.Context(), "Failed to get order status", "order_number", orderNumber, "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, view)
}

// ListOrders 获取用户订单列表
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "user_id is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, total, err := h.app.ListOrders(c.Request.Context(), userID, limit, offset)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list orders", "user_id", userID, "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"orders": orders, "total": total})
}

// TransitionStatusRequest 状态流转请求
type TransitionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// TransitionStatus 推进订单状态
func (h *OrderHandler) TransitionStatus(c *gin.Context) {
	orderNumber := c.Param("order_number")

	var req TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.app.TransitionStatus(c.Request.Context(), orderNumber, domain.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrOrderNotFound):
			response.ErrorWithStatus(c, http.StatusNotFound, "order not found")
		case errors.Is(err, application.ErrInvalidStatus), errors.Is(err, application.ErrInvalidTransition):
			response.ErrorWithStatus(c, http.StatusConflict, err.Error())
		default:
			logger.Error(c.Request.Context(), "Failed to transition order status", "order_number", orderNumber, "error", err)
			response.Error(c, err.Error())
		}
		return
	}

	response.Success(c, gin.H{
		"order_number": order.OrderNumber,
		"status":       string(order.Status),
		"badge_color":  order.Status.BadgeColor(),
	})
}
