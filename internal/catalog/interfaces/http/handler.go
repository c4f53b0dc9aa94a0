// Package http 商品目录 HTTP 接口
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bearingmart/storefront/internal/catalog/application"
	"github.com/bearingmart/storefront/pkg/logger"
	"github.com/bearingmart/storefront/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CatalogHandler HTTP 处理器
type CatalogHandler struct {
	app *application.CatalogApplicationService
}

// NewCatalogHandler 创建 HTTP 处理器实例
func NewCatalogHandler(app *application.CatalogApplicationService) *CatalogHandler {
	return &CatalogHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/products")
	{
		api.GET("", h.ListProducts)
		api.GET("/:id", h.GetProduct)
	}

	// 管理端接口，供后台使用
	admin := router.Group("/api/v1/admin/products")
	{
		admin.POST("", h.CreateProduct)
		admin.PUT("/:id", h.UpdateProduct)
	}
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	PartNumber    string `json:"part_number" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Brand         string `json:"brand"`
	BoreDiameter  string `json:"bore_diameter"`
	OuterDiameter string `json:"outer_diameter"`
	Width         string `json:"width"`
	Price         string `json:"price" binding:"required"`
	Stock         int    `json:"stock"`
	ImageURL      string `json:"image_url"`
	Description   string `json:"description"`
}

// CreateProduct 创建商品
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid price")
		return
	}

	cmd := application.CreateProductCommand{
		PartNumber:    req.PartNumber,
		Name:          req.Name,
		Brand:         req.Brand,
		BoreDiameter:  parseDimension(req.BoreDiameter),
		OuterDiameter: parseDimension(req.OuterDiameter),
		Width:         parseDimension(req.Width),
		Price:         price,
		Stock:         req.Stock,
		ImageURL:      req.ImageURL,
		Description:   req.Description,
	}

	productID, err := h.app.CreateProduct(c.Request.Context(), cmd)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to create product", "part_number", req.PartNumber, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, gin.H{"product_id": productID})
}

// UpdateProductRequest 更新商品请求
type UpdateProductRequest struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

// UpdateProduct 更新商品
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := application.UpdateProductCommand{
		ProductID:   productID,
		Name:        req.Name,
		Price:       parseDimension(req.Price),
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}

	if err := h.app.UpdateProduct(c.Request.Context(), cmd); err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, err.Error())
			return
		}
		logger.Error(c.Request.Context(), "Failed to update product", "product_id", productID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, gin.H{"status": "updated"})
}

// GetProduct 获取商品详情
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID := c.Param("id")

	product, err := h.app.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, err.Error())
			return
		}
		logger.Error(c.Request.Context(), "Failed to get product", "product_id", productID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, product)
}

// ListProducts 分页列出商品
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	brand := c.Query("brand")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, total, err := h.app.ListProducts(c.Request.Context(), brand, limit, offset)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list products", "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, gin.H{"products": products, "total": total})
}

// parseDimension 解析尺寸/金额字符串，非法输入按零处理
func parseDimension(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
