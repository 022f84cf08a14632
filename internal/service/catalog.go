package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pantrymarket/backend/internal/models"
)

// CatalogService handles CRUD for the catalog domain. Parent deletion
// follows the configured policy: restrict (default) refuses to delete a
// parent with dependents, cascade removes them in one transaction.
type CatalogService struct {
	db            *gorm.DB
	cascadeDelete bool
}

func NewCatalogService(db *gorm.DB, cascadeDelete bool) *CatalogService {
	return &CatalogService{db: db, cascadeDelete: cascadeDelete}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Categories

func (s *CatalogService) CreateCategory(ctx context.Context, category *models.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, patch models.CategoryPatch) (*models.Category, error) {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return nil, err
	}
	if changes := patch.Changes(); len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return s.GetCategory(ctx, id)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dependents int64
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			if !s.cascadeDelete {
				return ErrHasDependents
			}
			if err := tx.Where("category_id = ?", id).Delete(&models.Product{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}

// Products

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if _, err := s.GetCategory(ctx, product.CategoryID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, patch models.ProductPatch) (*models.Product, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	if changes := patch.Changes(); len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return s.GetProduct(ctx, id)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}

// Customers

func (s *CatalogService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return s.db.WithContext(ctx).Create(customer).Error
}

func (s *CatalogService) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &customer, nil
}

func (s *CatalogService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.WithContext(ctx).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *CatalogService) UpdateCustomer(ctx context.Context, id uint, patch models.CustomerPatch) (*models.Customer, error) {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return nil, err
	}
	if changes := patch.Changes(); len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return s.GetCustomer(ctx, id)
}

func (s *CatalogService) DeleteCustomer(ctx context.Context, id uint) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orders, carts int64
		if err := tx.Model(&models.Order{}).Where("customer_id = ?", id).Count(&orders).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Cart{}).Where("customer_id = ?", id).Count(&carts).Error; err != nil {
			return err
		}
		if orders+carts > 0 && !s.cascadeDelete {
			return ErrHasDependents
		}
		return tx.Delete(&models.Customer{}, id).Error
	})
}

// Orders

func (s *CatalogService) CreateOrder(ctx context.Context, order *models.Order) error {
	if _, err := s.GetCustomer(ctx, order.CustomerID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *CatalogService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (s *CatalogService) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *CatalogService) UpdateOrder(ctx context.Context, id uint, patch models.OrderPatch) (*models.Order, error) {
	if _, err := s.GetOrder(ctx, id); err != nil {
		return nil, err
	}
	if changes := patch.Changes(); len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return s.GetOrder(ctx, id)
}

func (s *CatalogService) DeleteOrder(ctx context.Context, id uint) error {
	if _, err := s.GetOrder(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dependents int64
		if err := tx.Model(&models.OrderItem{}).Where("order_id = ?", id).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			if !s.cascadeDelete {
				return ErrHasDependents
			}
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

// Order items

func (s *CatalogService) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	if _, err := s.GetOrder(ctx, item.OrderID); err != nil {
		return err
	}
	if _, err := s.GetProduct(ctx, item.ProductID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *CatalogService) GetOrderItem(ctx context.Context, id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (s *CatalogService) ListOrderItems(ctx context.Context) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CatalogService) UpdateOrderItem(ctx context.Context, id uint, patch models.OrderItemPatch) (*models.OrderItem, error) {
	if _, err := s.GetOrderItem(ctx, id); err != nil {
		return nil, err
	}
	if changes := patch.Changes(); len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.OrderItem{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return s.GetOrderItem(ctx, id)
}

func (s *CatalogService) DeleteOrderItem(ctx context.Context, id uint) error {
	if _, err := s.GetOrderItem(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.OrderItem{}, id).Error
}

// Carts

func (s *CatalogService) CreateCart(ctx context.Context, cart *models.Cart) error {
	if _, err := s.GetCustomer(ctx, cart.CustomerID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(cart).Error
}

func (s *CatalogService) GetCart(ctx context.Context, id uint) (*models.Cart, error) {
	var cart models.Cart
	if err := s.db.WithContext(ctx).First(&cart, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &cart, nil
}

func (s *CatalogService) ListCarts(ctx context.Context) ([]models.Cart, error) {
	var carts []models.Cart
	if err := s.db.WithContext(ctx).Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

func (s *CatalogService) UpdateCart(ctx context.Context, id uint, patch models.CartPatch) (*models.Cart, error) {
	if _, err := s.GetCart(ctx, id); err != nil {
		return nil, err
	}
	if changes := patch.Changes(); len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Cart{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return s.GetCart(ctx, id)
}

func (s *CatalogService) DeleteCart(ctx context.Context, id uint) error {
	if _, err := s.GetCart(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dependents int64
		if err := tx.Model(&models.CartItem{}).Where("cart_id = ?", id).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			if !s.cascadeDelete {
				return ErrHasDependents
			}
			if err := tx.Where("cart_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Cart{}, id).Error
	})
}

// Cart items

func (s *CatalogService) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	if _, err := s.GetCart(ctx, item.CartID); err != nil {
		return err
	}
	if _, err := s.GetProduct(ctx, item.ProductID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *CatalogService) GetCartItem(ctx context.Context, id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (s *CatalogService) ListCartItems(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CatalogService) UpdateCartItem(ctx context.Context, id uint, patch models.CartItemPatch) (*models.CartItem, error) {
	if _, err := s.GetCartItem(ctx, id); err != nil {
		return nil, err
	}
	if changes := patch.Changes(); len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return s.GetCartItem(ctx, id)
}

func (s *CatalogService) DeleteCartItem(ctx context.Context, id uint) error {
	if _, err := s.GetCartItem(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.CartItem{}, id).Error
}
