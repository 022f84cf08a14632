package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pantrymarket/backend/internal/models"
	"github.com/pantrymarket/backend/internal/service"
)

// CatalogHandler exposes CRUD for every catalog entity. The handlers are
// deliberately uniform: parse input, call the service, map the error.
type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// parseID reads the :id path parameter. A non-numeric id is a validation
// error (422), not a missing record.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// Categories

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := h.catalog.CreateCategory(c.Request.Context(), &category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	category, err := h.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.CategoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	category, err := h.catalog.UpdateCategory(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted successfully"})
}

// Products

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if product.Quantity < 0 || product.Price.IsNegative() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "price and quantity must be non-negative"})
		return
	}
	if err := h.catalog.CreateProduct(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Customers

func (h *CatalogHandler) CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := h.catalog.CreateCustomer(c.Request.Context(), &customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	customers, err := h.catalog.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CatalogHandler) GetCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	customer, err := h.catalog.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CatalogHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.CustomerPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	customer, err := h.catalog.UpdateCustomer(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CatalogHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted successfully"})
}

// Orders

func (h *CatalogHandler) CreateOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := h.catalog.CreateOrder(c.Request.Context(), &order); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *CatalogHandler) ListOrders(c *gin.Context) {
	orders, err := h.catalog.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *CatalogHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.catalog.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *CatalogHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	order, err := h.catalog.UpdateOrder(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *CatalogHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted successfully"})
}

// Order items

func (h *CatalogHandler) CreateOrderItem(c *gin.Context) {
	var item models.OrderItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := h.catalog.CreateOrderItem(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CatalogHandler) ListOrderItems(c *gin.Context) {
	items, err := h.catalog.ListOrderItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) GetOrderItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.catalog.GetOrderItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) UpdateOrderItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.OrderItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	item, err := h.catalog.UpdateOrderItem(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) DeleteOrderItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteOrderItem(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order item deleted successfully"})
}

// Carts

func (h *CatalogHandler) CreateCart(c *gin.Context) {
	var cart models.Cart
	if err := c.ShouldBindJSON(&cart); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := h.catalog.CreateCart(c.Request.Context(), &cart); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

func (h *CatalogHandler) ListCarts(c *gin.Context) {
	carts, err := h.catalog.ListCarts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carts)
}

func (h *CatalogHandler) GetCart(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cart, err := h.catalog.GetCart(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CatalogHandler) UpdateCart(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.CartPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	cart, err := h.catalog.UpdateCart(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CatalogHandler) DeleteCart(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteCart(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart deleted successfully"})
}

// Cart items

func (h *CatalogHandler) CreateCartItem(c *gin.Context) {
	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := h.catalog.CreateCartItem(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CatalogHandler) ListCartItems(c *gin.Context) {
	items, err := h.catalog.ListCartItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) GetCartItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.catalog.GetCartItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) UpdateCartItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.CartItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	item, err := h.catalog.UpdateCartItem(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) DeleteCartItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteCartItem(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart item deleted successfully"})
}
