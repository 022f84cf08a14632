package service

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pantrymarket/backend/internal/models"
	"github.com/pantrymarket/backend/internal/query"
)

// ReportService runs the cross-entity joins and aggregates of the catalog
// domain and folds flat rows into the nested shapes the API serves. All
// aggregates use inner joins, so a group with no matching child rows is
// simply absent from the output.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// categoryKey is the full projected parent record for the category fold.
type categoryKey struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ProductEntry mirrors the projected product fields of the join. Price is a
// string here, matching the projection this endpoint always served.
type ProductEntry struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Quantity    int    `json:"quantity"`
}

// CategoryWithProducts is one folded group of the category/product join.
type CategoryWithProducts struct {
	ID       uint           `json:"id"`
	Name     string         `json:"name"`
	Products []ProductEntry `json:"products"`
}

// CategoriesWithProducts joins Category to Product and folds the rows per
// category. Categories without products do not appear.
func (s *ReportService) CategoriesWithProducts(ctx context.Context) ([]CategoryWithProducts, error) {
	var flat []struct {
		CategoryID   uint
		CategoryName string
		ProductID    uint
		ProductName  string
		Description  string
		Price        decimal.Decimal
		Image        string
		Quantity     int
	}
	err := s.db.WithContext(ctx).Table("categories").
		Select("categories.id as category_id, categories.name as category_name, products.id as product_id, products.name as product_name, products.description, products.price, products.image, products.quantity").
		Joins("JOIN products ON categories.id = products.category_id").
		Scan(&flat).Error
	if err != nil {
		return nil, err
	}

	rows := make([]query.Row[categoryKey, ProductEntry], len(flat))
	for i, r := range flat {
		rows[i] = query.Row[categoryKey, ProductEntry]{
			Parent: categoryKey{ID: r.CategoryID, Name: r.CategoryName},
			Child: ProductEntry{
				ID:          r.ProductID,
				Name:        r.ProductName,
				Description: r.Description,
				Price:       r.Price.String(),
				Image:       r.Image,
				Quantity:    r.Quantity,
			},
		}
	}

	result := make([]CategoryWithProducts, 0, len(rows))
	for _, g := range query.Fold(rows) {
		result = append(result, CategoryWithProducts{
			ID:       g.Parent.ID,
			Name:     g.Parent.Name,
			Products: g.Children,
		})
	}
	return result, nil
}

// AvgPriceRow is one grouped AVG result.
type AvgPriceRow struct {
	CategoryName string  `json:"category_name"`
	AvgPrice     float64 `json:"avg_price"`
}

func (s *ReportService) AvgPriceByCategory(ctx context.Context) ([]AvgPriceRow, error) {
	rows := make([]AvgPriceRow, 0)
	err := s.db.WithContext(ctx).Table("categories").
		Select("categories.name as category_name, AVG(products.price) as avg_price").
		Joins("JOIN products ON categories.id = products.category_id").
		Group("categories.name").
		Scan(&rows).Error
	return rows, err
}

// CategoryQuantityRow is one grouped COUNT result.
type CategoryQuantityRow struct {
	CategoryName string `json:"category_name"`
	Quantity     int64  `json:"quantity"`
}

// ProductsQuantityPerCategory counts products per category. A non-empty
// category narrows the result to that one group; no match means an empty
// slice, not an error.
func (s *ReportService) ProductsQuantityPerCategory(ctx context.Context, category string) ([]CategoryQuantityRow, error) {
	rows := make([]CategoryQuantityRow, 0)
	q := s.db.WithContext(ctx).Table("categories").
		Select("categories.name as category_name, COUNT(products.id) as quantity").
		Joins("JOIN products ON categories.id = products.category_id")
	if category != "" {
		q = q.Where("categories.name = ?", category)
	}
	err := q.Group("categories.name").Scan(&rows).Error
	return rows, err
}

type customerKey struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// OrderEntry is one order in a customer fold.
type OrderEntry struct {
	ID        uint   `json:"id"`
	OrderDate string `json:"order_date"`
}

// CustomerWithOrders is one folded group of the customer/order join.
type CustomerWithOrders struct {
	ID     uint         `json:"id"`
	Name   string       `json:"name"`
	Orders []OrderEntry `json:"orders"`
}

// OrdersPerCustomer folds the customer/order join; a non-nil customerID
// narrows to one customer.
func (s *ReportService) OrdersPerCustomer(ctx context.Context, customerID *uint) ([]CustomerWithOrders, error) {
	var flat []struct {
		CustomerID   uint
		CustomerName string
		OrderID      uint
		OrderDate    models.Timestamp
	}
	q := s.db.WithContext(ctx).Table("customers").
		Select("customers.id as customer_id, customers.name as customer_name, orders.id as order_id, orders.order_date").
		Joins("JOIN orders ON orders.customer_id = customers.id")
	if customerID != nil {
		q = q.Where("customers.id = ?", *customerID)
	}
	if err := q.Scan(&flat).Error; err != nil {
		return nil, err
	}

	rows := make([]query.Row[customerKey, OrderEntry], len(flat))
	for i, r := range flat {
		rows[i] = query.Row[customerKey, OrderEntry]{
			Parent: customerKey{ID: r.CustomerID, Name: r.CustomerName},
			Child:  OrderEntry{ID: r.OrderID, OrderDate: r.OrderDate.String()},
		}
	}

	result := make([]CustomerWithOrders, 0, len(rows))
	for _, g := range query.Fold(rows) {
		result = append(result, CustomerWithOrders{
			ID:     g.Parent.ID,
			Name:   g.Parent.Name,
			Orders: g.Children,
		})
	}
	return result, nil
}

// OrderDataRow is one flat row of the customer→order→item→product join.
type OrderDataRow struct {
	CustomerID   uint   `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	OrderID      uint   `json:"order_id"`
	OrderItemID  uint   `json:"order_item_id"`
	ProductID    uint   `json:"product_id"`
	ProductName  string `json:"product_name"`
}

func (s *ReportService) OrderDataOfCustomers(ctx context.Context, customerID *uint) ([]OrderDataRow, error) {
	rows := make([]OrderDataRow, 0)
	q := s.db.WithContext(ctx).Table("customers").
		Select("customers.id as customer_id, customers.name as customer_name, orders.id as order_id, order_items.id as order_item_id, products.id as product_id, products.name as product_name").
		Joins("JOIN orders ON orders.customer_id = customers.id").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id")
	if customerID != nil {
		q = q.Where("customers.id = ?", *customerID)
	}
	err := q.Scan(&rows).Error
	return rows, err
}

// CustomerOrderCountRow is one grouped COUNT of orders per customer.
type CustomerOrderCountRow struct {
	CustomerID   uint   `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	NumOfOrders  int64  `json:"num_of_orders"`
}

func (s *ReportService) NumOfOrdersPerCustomer(ctx context.Context, customerID *uint) ([]CustomerOrderCountRow, error) {
	rows := make([]CustomerOrderCountRow, 0)
	q := s.db.WithContext(ctx).Table("customers").
		Select("customers.id as customer_id, customers.name as customer_name, COUNT(orders.id) as num_of_orders").
		Joins("JOIN orders ON customers.id = orders.customer_id")
	if customerID != nil {
		q = q.Where("customers.id = ?", *customerID)
	}
	err := q.Group("customers.id, customers.name").Scan(&rows).Error
	return rows, err
}

// OrderTotalPriceRow is one grouped SUM of product prices per order.
type OrderTotalPriceRow struct {
	CustomerID   uint    `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	OrderID      uint    `json:"order_id"`
	TotalPrice   float64 `json:"total_price"`
}

func (s *ReportService) TotalPriceOfOrder(ctx context.Context, orderID *uint) ([]OrderTotalPriceRow, error) {
	rows := make([]OrderTotalPriceRow, 0)
	q := s.db.WithContext(ctx).Table("customers").
		Select("customers.id as customer_id, customers.name as customer_name, orders.id as order_id, SUM(products.price) as total_price").
		Joins("JOIN orders ON customers.id = orders.customer_id").
		Joins("JOIN order_items ON orders.id = order_items.order_id").
		Joins("JOIN products ON order_items.product_id = products.id")
	if orderID != nil {
		q = q.Where("orders.id = ?", *orderID)
	}
	err := q.Group("customers.id, customers.name, orders.id").Scan(&rows).Error
	return rows, err
}

// OrderTotalCountRow is one grouped COUNT of products per order.
type OrderTotalCountRow struct {
	CustomerID   uint   `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	OrderID      uint   `json:"order_id"`
	TotalCount   int64  `json:"total_count"`
}

func (s *ReportService) TotalCountOfOrder(ctx context.Context, orderID *uint) ([]OrderTotalCountRow, error) {
	rows := make([]OrderTotalCountRow, 0)
	q := s.db.WithContext(ctx).Table("customers").
		Select("customers.id as customer_id, customers.name as customer_name, orders.id as order_id, COUNT(products.id) as total_count").
		Joins("JOIN orders ON customers.id = orders.customer_id").
		Joins("JOIN order_items ON orders.id = order_items.order_id").
		Joins("JOIN products ON order_items.product_id = products.id")
	if orderID != nil {
		q = q.Where("orders.id = ?", *orderID)
	}
	err := q.Group("customers.id, customers.name, orders.id").Scan(&rows).Error
	return rows, err
}

// ProductOrderCountRow counts how many order items reference one product.
type ProductOrderCountRow struct {
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	TotalOrders  int64   `json:"total_orders"`
}

func (s *ReportService) TotalProductsPerOrder(ctx context.Context, productID uint) ([]ProductOrderCountRow, error) {
	rows := make([]ProductOrderCountRow, 0)
	err := s.db.WithContext(ctx).Table("products").
		Select("products.id as product_id, products.name as product_name, products.price as product_price, COUNT(order_items.id) as total_orders").
		Joins("JOIN order_items ON products.id = order_items.product_id").
		Where("products.id = ?", productID).
		Group("products.id, products.name, products.price").
		Scan(&rows).Error
	return rows, err
}

// ProductsInPriceRange lists products with min <= price <= max, bounds
// inclusive.
func (s *ReportService) ProductsInPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := s.db.WithContext(ctx).
		Where("price >= ? AND price <= ?", min, max).
		Find(&products).Error
	return products, err
}

// ProductsInStock lists products whose quantity is at least the threshold.
func (s *ReportService) ProductsInStock(ctx context.Context, minStock int) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := s.db.WithContext(ctx).
		Where("quantity >= ?", minStock).
		Find(&products).Error
	return products, err
}
