package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

type Recipe struct {
	ID            uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Title         string           `gorm:"size:255;not null" json:"title"`
	Description   string           `gorm:"type:text;not null" json:"description"`
	Ingredients   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions  string           `gorm:"type:text;not null" json:"instructions"`
	AuthorID      uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"author_id"`
	Category      string           `gorm:"size:50;not null" json:"category"`
	EstimatedTime int              `gorm:"not null" json:"estimated_time"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeFavorite is a weak back-reference: a user bookmarking a recipe they
// do not own. Rows here never imply ownership or cascade back to the recipe.
type RecipeFavorite struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_user" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type RecipePatch struct {
	Title         *string           `json:"title"`
	Description   *string           `json:"description"`
	Ingredients   *JSONBStringArray `json:"ingredients"`
	Instructions  *string           `json:"instructions"`
	Category      *string           `json:"category"`
	EstimatedTime *int              `json:"estimated_time"`
}

func (p RecipePatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	if p.Ingredients != nil {
		changes["ingredients"] = *p.Ingredients
	}
	if p.Instructions != nil {
		changes["instructions"] = *p.Instructions
	}
	if p.Category != nil {
		changes["category"] = *p.Category
	}
	if p.EstimatedTime != nil {
		changes["estimated_time"] = *p.EstimatedTime
	}
	return changes
}
