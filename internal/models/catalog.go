package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Price fields are serialized as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

const timestampLayout = "2006-01-02 15:04:05"

// Timestamp is a time.Time that marshals as "YYYY-MM-DD HH:MM:SS".
type Timestamp time.Time

func (t Timestamp) String() string {
	return time.Time(t).Format(timestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(timestampLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid timestamp %s", s)
	}
	parsed, err := time.Parse(timestampLayout, s[1:len(s)-1])
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Value implements the driver.Valuer interface
func (t Timestamp) Value() (driver.Value, error) {
	return time.Time(t), nil
}

// Scan implements the sql.Scanner interface
func (t *Timestamp) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*t = Timestamp(v)
		return nil
	case []byte:
		parsed, err := time.Parse(timestampLayout, string(v))
		if err != nil {
			return err
		}
		*t = Timestamp(parsed)
		return nil
	case string:
		parsed, err := time.Parse(timestampLayout, v)
		if err != nil {
			return err
		}
		*t = Timestamp(parsed)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", value)
	}
}

type Category struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
}

type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `gorm:"size:255;not null" json:"image"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`
	Quantity    int             `gorm:"not null;check:quantity >= 0" json:"quantity"`
}

type Customer struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	Name    string `gorm:"size:255;not null" json:"name"`
	Email   string `gorm:"size:255;not null" json:"email"`
	Phone   string `gorm:"size:20;not null" json:"phone"`
	Address string `gorm:"type:text;not null" json:"address"`
	City    string `gorm:"size:255;not null" json:"city"`
	State   string `gorm:"size:255;not null" json:"state"`
	Zip     string `gorm:"size:20;not null" json:"zip"`
	Country string `gorm:"size:255;not null" json:"country"`
}

type Order struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	OrderDate  Timestamp `gorm:"not null" json:"order_date"`
}

type OrderItem struct {
	ID        uint `gorm:"primarykey" json:"id"`
	OrderID   uint `gorm:"not null;index" json:"order_id"`
	ProductID uint `gorm:"not null;index" json:"product_id"`
	Quantity  int  `gorm:"not null;check:quantity >= 0" json:"quantity"`
}

type Cart struct {
	ID         uint `gorm:"primarykey" json:"id"`
	CustomerID uint `gorm:"not null;index" json:"customer_id"`
}

type CartItem struct {
	ID        uint `gorm:"primarykey" json:"id"`
	CartID    uint `gorm:"not null;index" json:"cart_id"`
	ProductID uint `gorm:"not null;index" json:"product_id"`
	Quantity  int  `gorm:"not null;check:quantity >= 0" json:"quantity"`
}

// Patch types carry partial updates. Only non-nil fields are applied.

type CategoryPatch struct {
	Name *string `json:"name"`
}

func (p CategoryPatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	return changes
}

type ProductPatch struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	CategoryID  *uint            `json:"category_id"`
	Quantity    *int             `json:"quantity"`
}

func (p ProductPatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	if p.Price != nil {
		changes["price"] = *p.Price
	}
	if p.Image != nil {
		changes["image"] = *p.Image
	}
	if p.CategoryID != nil {
		changes["category_id"] = *p.CategoryID
	}
	if p.Quantity != nil {
		changes["quantity"] = *p.Quantity
	}
	return changes
}

type CustomerPatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Zip     *string `json:"zip"`
	Country *string `json:"country"`
}

func (p CustomerPatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Email != nil {
		changes["email"] = *p.Email
	}
	if p.Phone != nil {
		changes["phone"] = *p.Phone
	}
	if p.Address != nil {
		changes["address"] = *p.Address
	}
	if p.City != nil {
		changes["city"] = *p.City
	}
	if p.State != nil {
		changes["state"] = *p.State
	}
	if p.Zip != nil {
		changes["zip"] = *p.Zip
	}
	if p.Country != nil {
		changes["country"] = *p.Country
	}
	return changes
}

type OrderPatch struct {
	CustomerID *uint      `json:"customer_id"`
	OrderDate  *Timestamp `json:"order_date"`
}

func (p OrderPatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.CustomerID != nil {
		changes["customer_id"] = *p.CustomerID
	}
	if p.OrderDate != nil {
		changes["order_date"] = time.Time(*p.OrderDate)
	}
	return changes
}

type OrderItemPatch struct {
	OrderID   *uint `json:"order_id"`
	ProductID *uint `json:"product_id"`
	Quantity  *int  `json:"quantity"`
}

func (p OrderItemPatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.OrderID != nil {
		changes["order_id"] = *p.OrderID
	}
	if p.ProductID != nil {
		changes["product_id"] = *p.ProductID
	}
	if p.Quantity != nil {
		changes["quantity"] = *p.Quantity
	}
	return changes
}

type CartPatch struct {
	CustomerID *uint `json:"customer_id"`
}

func (p CartPatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.CustomerID != nil {
		changes["customer_id"] = *p.CustomerID
	}
	return changes
}

type CartItemPatch struct {
	CartID    *uint `json:"cart_id"`
	ProductID *uint `json:"product_id"`
	Quantity  *int  `json:"quantity"`
}

func (p CartItemPatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.CartID != nil {
		changes["cart_id"] = *p.CartID
	}
	if p.ProductID != nil {
		changes["product_id"] = *p.ProductID
	}
	if p.Quantity != nil {
		changes["quantity"] = *p.Quantity
	}
	return changes
}
