package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pantrymarket/backend/internal/service"
)

// ReportHandler serves the cross-entity report endpoints. Filters travel as
// query parameters; a malformed filter is a validation error (422).
type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// optionalUintQuery parses an optional numeric query parameter. Absent means
// (nil, true); present but malformed responds 422 and returns ok=false.
func optionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw, exists := c.GetQuery(name)
	if !exists || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid " + name})
		return nil, false
	}
	id := uint(v)
	return &id, true
}

func (h *ReportHandler) CategoriesWithProducts(c *gin.Context) {
	result, err := h.reports.CategoriesWithProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReportHandler) AvgPriceByCategory(c *gin.Context) {
	rows, err := h.reports.AvgPriceByCategory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) ProductsQuantityPerCategory(c *gin.Context) {
	rows, err := h.reports.ProductsQuantityPerCategory(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) OrdersPerCustomer(c *gin.Context) {
	customerID, ok := optionalUintQuery(c, "id")
	if !ok {
		return
	}
	result, err := h.reports.OrdersPerCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReportHandler) OrderDataOfCustomers(c *gin.Context) {
	customerID, ok := optionalUintQuery(c, "id")
	if !ok {
		return
	}
	rows, err := h.reports.OrderDataOfCustomers(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) NumOfOrdersPerCustomer(c *gin.Context) {
	customerID, ok := optionalUintQuery(c, "id")
	if !ok {
		return
	}
	rows, err := h.reports.NumOfOrdersPerCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) TotalPriceOfOrder(c *gin.Context) {
	orderID, ok := optionalUintQuery(c, "id")
	if !ok {
		return
	}
	rows, err := h.reports.TotalPriceOfOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) TotalCountOfOrder(c *gin.Context) {
	orderID, ok := optionalUintQuery(c, "id")
	if !ok {
		return
	}
	rows, err := h.reports.TotalCountOfOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) TotalProductsPerOrder(c *gin.Context) {
	productID, ok := optionalUintQuery(c, "id")
	if !ok {
		return
	}
	if productID == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "id is required"})
		return
	}
	rows, err := h.reports.TotalProductsPerOrder(c.Request.Context(), *productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) ProductsInPriceRange(c *gin.Context) {
	min, err := decimal.NewFromString(c.DefaultQuery("min_cost", "0"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid min_cost"})
		return
	}
	max, err := decimal.NewFromString(c.DefaultQuery("max_cost", "0"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid max_cost"})
		return
	}
	products, err := h.reports.ProductsInPriceRange(c.Request.Context(), min, max)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ReportHandler) ProductsInStock(c *gin.Context) {
	raw := c.DefaultQuery("stock", "1")
	minStock, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid stock"})
		return
	}
	products, err := h.reports.ProductsInStock(c.Request.Context(), minStock)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
