package database

import (
	"gorm.io/gorm"

	"github.com/pantrymarket/backend/internal/models"
)

// RunMigrations auto-migrates the full schema. Order matters only for
// readability; gorm resolves table creation itself.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Recipe{},
		&models.RecipeFavorite{},
	)
}
