// Package application 商品目录应用服务
package application

import (
	"context"
	"errors"

	"github.com/bearingmart/storefront/internal/catalog/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrProductNotFound 商品不存在
var ErrProductNotFound = errors.New("product not found")

// CreateProductCommand 创建商品命令
type CreateProductCommand struct {
	PartNumber    string
	Name          string
	Brand         string
	BoreDiameter  decimal.Decimal
	OuterDiameter decimal.Decimal
	Width         decimal.Decimal
	Price         decimal.Decimal
	Stock         int
	ImageURL      string
	Description   string
}

// UpdateProductCommand 更新商品命令
type UpdateProductCommand struct {
	ProductID   string
	Name        string
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
	Description string
}

// CatalogApplicationService 商品目录应用服务
type CatalogApplicationService struct {
	repo domain.ProductRepository
}

// NewCatalogApplicationService 创建商品目录应用服务实例
func NewCatalogApplicationService(repo domain.ProductRepository) *CatalogApplicationService {
	return &CatalogApplicationService{repo: repo}
}

// CreateProduct 创建商品，返回商品 ID
func (s *CatalogApplicationService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (string, error) {
	product := &domain.Product{
		ProductID:     uuid.NewString(),
		PartNumber:    cmd.PartNumber,
		Name:          cmd.Name,
		Brand:         cmd.Brand,
		BoreDiameter:  cmd.BoreDiameter,
		OuterDiameter: cmd.OuterDiameter,
		Width:         cmd.Width,
		Price:         cmd.Price,
		Stock:         cmd.Stock,
		ImageURL:      cmd.ImageURL,
		Description:   cmd.Description,
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return "", err
	}
	return product.ProductID, nil
}

// UpdateProduct 更新商品
func (s *CatalogApplicationService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) error {
	product, err := s.repo.GetByID(ctx, cmd.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	if cmd.Name != "" {
		product.Name = cmd.Name
	}
	if !cmd.Price.IsZero() {
		product.Price = cmd.Price
	}
	if cmd.Stock >= 0 {
		product.Stock = cmd.Stock
	}
	if cmd.ImageURL != "" {
		product.ImageURL = cmd.ImageURL
	}
	if cmd.Description != "" {
		product.Description = cmd.Description
	}

	return s.repo.Save(ctx, product)
}

// GetProduct 获取商品详情
func (s *CatalogApplicationService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetProductByPartNumber 根据型号获取商品
func (s *CatalogApplicationService) GetProductByPartNumber(ctx context.Context, partNumber string) (*domain.Product, error) {
	product, err := s.repo.GetByPartNumber(ctx, partNumber)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListProducts 分页列出商品
func (s *CatalogApplicationService) ListProducts(ctx context.Context, brand string, limit, offset int) ([]*domain.Product, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, brand, limit, offset)
}
