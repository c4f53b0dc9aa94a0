// Package http 购物车 HTTP 接口
package http

import (
	"net/http"

	"github.com/bearingmart/storefront/internal/cart/application"
	"github.com/bearingmart/storefront/pkg/logger"
	"github.com/bearingmart/storefront/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CartHandler HTTP 处理器
type CartHandler struct {
	app *application.CartApplicationService
}

// NewCartHandler 创建 HTTP 处理器实例
func NewCartHandler(app *application.CartApplicationService) *CartHandler {
	return &CartHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/cart")
	{
		api.GET("/:user_id", h.GetCart)
		api.POST("/items", h.AddItem)
		api.PATCH("/items", h.UpdateQuantity)
		api.DELETE("/:user_id/items/:product_id", h.RemoveItem)
		api.DELETE("/:user_id", h.ClearCart)
	}
}

// AddItemRequest 添加商品请求
type AddItemRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	ProductID  string `json:"product_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	PartNumber string `json:"part_number"`
	Price      string `json:"price" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	ImageURL   string `json:"image_url"`
}

// GetCart 获取购物车
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.Param("user_id")
	cart, err := h.app.GetCart(c.Request.Context(), userID)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to get cart", "user_id", userID, "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"cart": cart, "total": cart.Total().String()})
}

// AddItem 添加商品
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid price")
		return
	}

	cmd := application.AddItemCommand{
		UserID:     req.UserID,
		ProductID:  req.ProductID,
		Name:       req.Name,
		PartNumber: req.PartNumber,
		Price:      price,
		Quantity:   req.Quantity,
		ImageURL:   req.ImageURL,
	}

	if err := h.app.AddItem(c.Request.Context(), cmd); err != nil {
		logger.Error(c.Request.Context(), "Failed to add cart item", "user_id", req.UserID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, gin.H{"status": "added"})
}

// UpdateQuantityRequest 更新数量请求
type UpdateQuantityRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// UpdateQuantity 更新商品数量
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.app.UpdateQuantity(c.Request.Context(), req.UserID, req.ProductID, req.Quantity); err != nil {
		logger.Error(c.Request.Context(), "Failed to update cart item quantity", "user_id", req.UserID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, gin.H{"status": "updated"})
}

// RemoveItem 移除商品
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.Param("user_id")
	productID := c.Param("product_id")

	if err := h.app.RemoveItem(c.Request.Context(), userID, productID); err != nil {
		logger.Error(c.Request.Context(), "Failed to remove cart item", "user_id", userID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, gin.H{"status": "removed"})
}

// ClearCart 清空购物车
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.Param("user_id")

	if err := h.app.ClearCart(c.Request.Context(), userID, "user_requested"); err != nil {
		logger.Error(c.Request.Context(), "Failed to clear cart", "user_id", userID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, gin.H{"status": "cleared"})
}
