package application

import (
	"context"
	"testing"

	"github.com/bearingmart/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProductRepository struct {
	products map[string]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[string]*domain.Product)}
}

func (m *mockProductRepository) Save(ctx context.Context, product *domain.Product) error {
	m.products[product.ProductID] = product
	return nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	return m.products[productID], nil
}

func (m *mockProductRepository) GetByPartNumber(ctx context.Context, partNumber string) (*domain.Product, error) {
	for _, p := range m.products {
		if p.PartNumber == partNumber {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockProductRepository) List(ctx context.Context, brand string, limit, offset int) ([]*domain.Product, int64, error) {
	var result []*domain.Product
	for _, p := range m.products {
		if brand == "" || p.Brand == brand {
			result = append(result, p)
		}
	}
	return result, int64(len(result)), nil
}

func newProductCmd() CreateProductCommand {
	return CreateProductCommand{
		PartNumber:    "6205-2RS-25x52x15",
		Name:          "Deep Groove Ball Bearing",
		Brand:         "SKF",
		BoreDiameter:  decimal.RequireFromString("25"),
		OuterDiameter: decimal.RequireFromString("52"),
		Width:         decimal.RequireFromString("15"),
		Price:         decimal.RequireFromString("100.00"),
		Stock:         40,
	}
}

func TestCreateProduct(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewCatalogApplicationService(repo)

	id, err := svc.CreateProduct(context.Background(), newProductCmd())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	product, err := svc.GetProduct(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "6205-2RS-25x52x15", product.PartNumber)
	assert.True(t, product.InStock(1))
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := NewCatalogApplicationService(newMockProductRepository())

	_, err := svc.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProductByPartNumber(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewCatalogApplicationService(repo)

	_, err := svc.CreateProduct(context.Background(), newProductCmd())
	require.NoError(t, err)

	product, err := svc.GetProductByPartNumber(context.Background(), "6205-2RS-25x52x15")
	require.NoError(t, err)
	assert.Equal(t, "SKF", product.Brand)
}

func TestUpdateProduct(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewCatalogApplicationService(repo)

	id, err := svc.CreateProduct(context.Background(), newProductCmd())
	require.NoError(t, err)

	err = svc.UpdateProduct(context.Background(), UpdateProductCommand{
		ProductID: id,
		Price:     decimal.RequireFromString("112.50"),
		Stock:     10,
	})
	require.NoError(t, err)

	product, err := svc.GetProduct(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("112.50")))
	assert.Equal(t, 10, product.Stock)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc := NewCatalogApplicationService(newMockProductRepository())

	err := svc.UpdateProduct(context.Background(), UpdateProductCommand{ProductID: "missing"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}
