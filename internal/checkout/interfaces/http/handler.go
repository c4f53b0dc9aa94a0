// Package http 结算 HTTP 接口
package http

import (
	"errors"
	"net/http"

	"github.com/bearingmart/storefront/internal/checkout/application"
	"github.com/bearingmart/storefront/internal/checkout/domain"
	"github.com/bearingmart/storefront/pkg/logger"
	"github.com/bearingmart/storefront/pkg/response"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler HTTP 处理器
type CheckoutHandler struct {
	app       *application.CheckoutApplicationService
	finalizer *application.Finalizer
}

// NewCheckoutHandler 创建 HTTP 处理器实例
func NewCheckoutHandler(app *application.CheckoutApplicationService, finalizer *application.Finalizer) *CheckoutHandler {
	return &CheckoutHandler{app: app, finalizer: finalizer}
}

// RegisterRoutes 注册路由
func (h *CheckoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/checkout")
	{
		api.GET("/totals", h.GetTotals)
		api.PUT("/shipping-address", h.SaveShippingAddress)
		api.POST("/payment-intent", h.CreatePaymentIntent)
		api.POST("/finalize", h.Finalize)
	}
}

// GetTotals 计算当前购物车的结算金额
func (h *CheckoutHandler) GetTotals(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "user_id is required")
		return
	}

	totals, err := h.app.GetTotals(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			response.ErrorWithStatus(c, http.StatusBadRequest, "cart is empty")
			return
		}
		logger.Error(c.Request.Context(), "Failed to compute totals", "user_id", userID, "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, totals)
}

// SaveShippingAddressRequest 暂存收货地址请求
type SaveShippingAddressRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	Province   string `json:"province" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

// SaveShippingAddress 暂存收货地址
func (h *CheckoutHandler) SaveShippingAddress(c *gin.Context) {
	var req SaveShippingAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	addr := domain.ShippingAddress{
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		Province:   req.Province,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}
	if err := h.app.SaveShippingAddress(c.Request.Context(), req.UserID, addr); err != nil {
		if errors.Is(err, application.ErrIncompleteAddress) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error(c.Request.Context(), "Failed to save shipping address", "user_id", req.UserID, "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"status": "saved"})
}

// CreatePaymentIntentRequest 创建支付意向请求
type CreatePaymentIntentRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Email  string `json:"email"`
}

// CreatePaymentIntent 创建支付意向
func (h *CheckoutHandler) CreatePaymentIntent(c *gin.Context) {
	var req CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	intent, totals, err := h.app.CreatePaymentIntent(c.Request.Context(), req.UserID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			response.ErrorWithStatus(c, http.StatusBadRequest, "cart is empty")
		case errors.Is(err, application.ErrGatewayNotConfigured):
			response.ErrorWithStatus(c, http.StatusServiceUnavailable, err.Error())
		default:
			logger.Error(c.Request.Context(), "Failed to create payment intent", "user_id", req.UserID, "error", err)
			response.Error(c, err.Error())
		}
		return
	}

	response.Success(c, gin.H{
		"client_secret": intent.ClientSecret,
		"intent_id":     intent.ID,
		"totals":        totals,
	})
}

// FinalizeRequest 结算请求
type FinalizeRequest struct {
	OrderToken string `json:"order_token"`
	UserID     string `json:"user_id" binding:"required"`
	Email      string `json:"email"`
}

// Finalize 支付成功回跳后的结算入口
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	var req FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	// 回跳 URL 上的 order_token 优先于请求体
	token := c.Query("order_token")
	if token == "" {
		token = req.OrderToken
	}

	result, err := h.finalizer.Finalize(c.Request.Context(), application.FinalizeCommand{
		OrderToken: token,
		UserID:     req.UserID,
		Email:      req.Email,
	})
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to finalize order", "user_id", req.UserID, "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, result)
}
