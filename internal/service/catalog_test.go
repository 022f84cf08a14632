package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pantrymarket/backend/internal/models"
)

func createCategoryWithProduct(t *testing.T, db *gorm.DB) (models.Category, models.Product) {
	t.Helper()
	category := models.Category{Name: "Fruit"}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{Name: "Apple", Description: "crisp", Price: decimal.NewFromFloat(1.00), Image: "apple.png", CategoryID: category.ID, Quantity: 10}
	require.NoError(t, db.Create(&product).Error)
	return category, product
}

func TestCategoryCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, false)
	ctx := context.Background()

	category := models.Category{Name: "Fruit"}
	require.NoError(t, svc.CreateCategory(ctx, &category))
	require.NotZero(t, category.ID)

	got, err := svc.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fruit", got.Name)

	name := "Fresh Fruit"
	updated, err := svc.UpdateCategory(ctx, category.ID, models.CategoryPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Fresh Fruit", updated.Name)

	require.NoError(t, svc.DeleteCategory(ctx, category.ID))
	_, err = svc.GetCategory(ctx, category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetCategoryNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, false)

	_, err := svc.GetCategory(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCategoryEmptyPatchKeepsRow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, false)
	ctx := context.Background()

	category := models.Category{Name: "Fruit"}
	require.NoError(t, svc.CreateCategory(ctx, &category))

	updated, err := svc.UpdateCategory(ctx, category.ID, models.CategoryPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Fruit", updated.Name)
}

func TestDeleteCategoryRestrictedWithProducts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, false)
	category, _ := createCategoryWithProduct(t, db)

	err := svc.DeleteCategory(context.Background(), category.ID)
	assert.ErrorIs(t, err, ErrHasDependents)

	// The category survives a refused delete.
	_, err = svc.GetCategory(context.Background(), category.ID)
	assert.NoError(t, err)
}

func TestDeleteCategoryCascades(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, true)
	category, product := createCategoryWithProduct(t, db)

	require.NoError(t, svc.DeleteCategory(context.Background(), category.ID))

	_, err := svc.GetProduct(context.Background(), product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, false)

	product := models.Product{Name: "Ghost", Description: "x", Price: decimal.NewFromFloat(1), Image: "x.png", CategoryID: 42, Quantity: 1}
	err := svc.CreateProduct(context.Background(), &product)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCustomerRestrictedWithOrders(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, false)
	ctx := context.Background()

	customer := models.Customer{Name: "Alice", Email: "alice@example.com", Phone: "555-0100", Address: "1 Main St", City: "Springfield", State: "IL", Zip: "62701", Country: "US"}
	require.NoError(t, svc.CreateCustomer(ctx, &customer))
	order := models.Order{CustomerID: customer.ID}
	require.NoError(t, svc.CreateOrder(ctx, &order))

	err := svc.DeleteCustomer(ctx, customer.ID)
	assert.ErrorIs(t, err, ErrHasDependents)
}

func TestDeleteOrderCascadesItems(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, true)
	ctx := context.Background()

	_, product := createCategoryWithProduct(t, db)
	customer := models.Customer{Name: "Alice", Email: "alice@example.com", Phone: "555-0100", Address: "1 Main St", City: "Springfield", State: "IL", Zip: "62701", Country: "US"}
	require.NoError(t, svc.CreateCustomer(ctx, &customer))
	order := models.Order{CustomerID: customer.ID}
	require.NoError(t, svc.CreateOrder(ctx, &order))
	item := models.OrderItem{OrderID: order.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, svc.CreateOrderItem(ctx, &item))

	require.NoError(t, svc.DeleteOrder(ctx, order.ID))

	_, err := svc.GetOrderItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderItemUnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, false)

	_, product := createCategoryWithProduct(t, db)
	item := models.OrderItem{OrderID: 99, ProductID: product.ID, Quantity: 1}
	err := svc.CreateOrderItem(context.Background(), &item)
	assert.ErrorIs(t, err, ErrNotFound)
}
