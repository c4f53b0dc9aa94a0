package repository

import (
	"context"
	"fmt"

	"github.com/bearingmart/storefront/internal/catalog/domain"
	"github.com/bearingmart/storefront/pkg/logger"
	"gorm.io/gorm"
)

// ProductRepositoryImpl 商品仓储实现
type ProductRepositoryImpl struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

// Save 保存商品
func (pr *ProductRepositoryImpl) Save(ctx context.Context, product *domain.Product) error {
	if err := pr.db.WithContext(ctx).Save(product).Error; err != nil {
		logger.Error(ctx, "Failed to save product",
			"product_id", product.ProductID,
			"error", err,
		)
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

// GetByID 根据业务 ID 获取商品
func (pr *ProductRepositoryImpl) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	var product domain.Product
	if err := pr.db.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// GetByPartNumber 根据型号获取商品
func (pr *ProductRepositoryImpl) GetByPartNumber(ctx context.Context, partNumber string) (*domain.Product, error) {
	var product domain.Product
	if err := pr.db.WithContext(ctx).Where("part_number = ?", partNumber).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// List 分页列出商品，支持按品牌过滤
func (pr *ProductRepositoryImpl) List(ctx context.Context, brand string, limit, offset int) ([]*domain.Product, int64, error) {
	var models []*domain.Product
	var total int64

	query := pr.db.WithContext(ctx).Model(&domain.Product{})
	if brand != "" {
		query = query.Where("brand = ?", brand)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&models).Error; err != nil {
		logger.Error(ctx, "Failed to list products", "error", err)
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return models, total, nil
}
