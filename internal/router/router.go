package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pantrymarket/backend/internal/api"
	"github.com/pantrymarket/backend/internal/middleware"
	"github.com/pantrymarket/backend/internal/service"
)

// Handlers groups everything the route table needs.
type Handlers struct {
	Auth    *api.AuthHandler
	Catalog *api.CatalogHandler
	Reports *api.ReportHandler
	Recipes *api.RecipeHandler
	Users   *api.UserHandler

	AuthService    *service.AuthService
	MutationLimits *middleware.RateLimiter
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// Setup builds the route table. Catalog reads and reports are public,
// catalog writes take a bearer token, and the recipe/user surface takes the
// session cookie (bearer honored as fallback).
func Setup(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORS(h.AllowedOrigins))

	timeout := h.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	r.Use(middleware.Timeout(timeout))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
	}

	bearer := middleware.AuthMiddleware(h.AuthService)
	session := middleware.SessionAuth(h.AuthService, h.AuthService)
	limited := h.MutationLimits.Middleware()

	catalog := v1.Group("/catalog")
	{
		// Reads are public.
		catalog.GET("/categories", h.Catalog.ListCategories)
		catalog.GET("/categories/:id", h.Catalog.GetCategory)
		catalog.GET("/products", h.Catalog.ListProducts)
		catalog.GET("/products/:id", h.Catalog.GetProduct)
		catalog.GET("/customers", h.Catalog.ListCustomers)
		catalog.GET("/customers/:id", h.Catalog.GetCustomer)
		catalog.GET("/orders", h.Catalog.ListOrders)
		catalog.GET("/orders/:id", h.Catalog.GetOrder)
		catalog.GET("/order-items", h.Catalog.ListOrderItems)
		catalog.GET("/order-items/:id", h.Catalog.GetOrderItem)
		catalog.GET("/carts", h.Catalog.ListCarts)
		catalog.GET("/carts/:id", h.Catalog.GetCart)
		catalog.GET("/cart-items", h.Catalog.ListCartItems)
		catalog.GET("/cart-items/:id", h.Catalog.GetCartItem)

		// Reports.
		catalog.GET("/categories-with-products", h.Reports.CategoriesWithProducts)
		catalog.GET("/avg-price-by-category", h.Reports.AvgPriceByCategory)
		catalog.GET("/products-quantity-per-category", h.Reports.ProductsQuantityPerCategory)
		catalog.GET("/orders-per-customer", h.Reports.OrdersPerCustomer)
		catalog.GET("/order-data-of-customers", h.Reports.OrderDataOfCustomers)
		catalog.GET("/num-of-orders-per-customer", h.Reports.NumOfOrdersPerCustomer)
		catalog.GET("/total-price-of-order", h.Reports.TotalPriceOfOrder)
		catalog.GET("/total-count-of-order", h.Reports.TotalCountOfOrder)
		catalog.GET("/total-products-per-order", h.Reports.TotalProductsPerOrder)
		catalog.GET("/products/cost", h.Reports.ProductsInPriceRange)
		catalog.GET("/products/stock", h.Reports.ProductsInStock)
	}

	catalogWrites := v1.Group("/catalog")
	catalogWrites.Use(bearer)
	{
		catalogWrites.POST("/categories", h.Catalog.CreateCategory)
		catalogWrites.PUT("/categories/:id", h.Catalog.UpdateCategory)
		catalogWrites.DELETE("/categories/:id", h.Catalog.DeleteCategory)
		catalogWrites.POST("/products", h.Catalog.CreateProduct)
		catalogWrites.PUT("/products/:id", h.Catalog.UpdateProduct)
		catalogWrites.DELETE("/products/:id", h.Catalog.DeleteProduct)
		catalogWrites.POST("/customers", h.Catalog.CreateCustomer)
		catalogWrites.PUT("/customers/:id", h.Catalog.UpdateCustomer)
		catalogWrites.DELETE("/customers/:id", h.Catalog.DeleteCustomer)
		catalogWrites.POST("/orders", h.Catalog.CreateOrder)
		catalogWrites.PUT("/orders/:id", h.Catalog.UpdateOrder)
		catalogWrites.DELETE("/orders/:id", h.Catalog.DeleteOrder)
		catalogWrites.POST("/order-items", h.Catalog.CreateOrderItem)
		catalogWrites.PUT("/order-items/:id", h.Catalog.UpdateOrderItem)
		catalogWrites.DELETE("/order-items/:id", h.Catalog.DeleteOrderItem)
		catalogWrites.POST("/carts", h.Catalog.CreateCart)
		catalogWrites.PUT("/carts/:id", h.Catalog.UpdateCart)
		catalogWrites.DELETE("/carts/:id", h.Catalog.DeleteCart)
		catalogWrites.POST("/cart-items", h.Catalog.CreateCartItem)
		catalogWrites.PUT("/cart-items/:id", h.Catalog.UpdateCartItem)
		catalogWrites.DELETE("/cart-items/:id", h.Catalog.DeleteCartItem)
	}

	recipes := v1.Group("/recipes")
	recipes.Use(session)
	{
		recipes.POST("", limited, h.Recipes.CreateRecipe)
		recipes.GET("/search", h.Recipes.SearchByTitle)
		recipes.GET("/search/ingredient", h.Recipes.SearchByIngredient)
		recipes.GET("/search/category", h.Recipes.SearchByCategory)
		recipes.GET("/less-ingredients", h.Recipes.LessIngredients)
		recipes.GET("/estimated-time-range", h.Recipes.EstimatedTimeRange)
		recipes.GET("/stats/count", h.Recipes.StatsCount)
		recipes.GET("/stats/categories", h.Recipes.StatsCategories)
		recipes.GET("/stats/ingredients", h.Recipes.StatsIngredients)
		recipes.GET("/stats/avg-time", h.Recipes.StatsAvgTime)
		recipes.GET("/stats/avg-ingredients", h.Recipes.StatsAvgIngredients)
		recipes.GET("/:id", h.Recipes.GetRecipe)
		recipes.PUT("/:id", limited, h.Recipes.UpdateRecipe)
		recipes.DELETE("/:id", limited, h.Recipes.DeleteRecipe)
		recipes.POST("/:id/shopping-list", h.Recipes.ShoppingList)
	}

	user := v1.Group("/user")
	user.Use(session)
	{
		user.GET("", h.Users.GetProfile)
		user.PUT("", h.Users.UpdateProfile)
		user.GET("/recipes", h.Users.MyRecipes)
		user.GET("/recipes/count", h.Users.MyRecipesCount)
		user.GET("/favorites", h.Users.ListFavorites)
		user.GET("/favorites/count", h.Users.FavoritesCount)
		user.PUT("/favorites/:id", h.Users.AddFavorite)
		user.DELETE("/favorites/:id", h.Users.RemoveFavorite)
	}

	return r
}
