package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrymarket/backend/internal/models"
	"github.com/pantrymarket/backend/internal/query"
)

// RecipeService handles recipe operations: CRUD with ownership checks,
// substring search, range filters and collection statistics.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe stores a new recipe owned by authorID.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &recipe, nil
}

// ListByAuthor lists the recipes a user owns.
func (s *RecipeService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	if err := s.db.WithContext(ctx).Where("author_id = ?", authorID).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdateRecipe applies a partial update. Only the author may modify a recipe.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, callerID uuid.UUID, patch models.RecipePatch) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != callerID {
		return nil, ErrForbidden
	}
	if changes := patch.Changes(); len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes a recipe. Only the author may delete it; deletion
// also fans out removal of every favorite row referencing the recipe, so no
// weak reference survives its target.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, callerID uuid.UUID) error {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if recipe.AuthorID != callerID {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeFavorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// SearchByTitle lists recipes whose title contains the query anywhere,
// case-insensitively. An empty query matches every recipe.
func (s *RecipeService) SearchByTitle(ctx context.Context, title string) ([]models.Recipe, error) {
	return s.searchColumn(ctx, "title", title)
}

// SearchByCategory works like SearchByTitle over the category field.
func (s *RecipeService) SearchByCategory(ctx context.Context, category string) ([]models.Recipe, error) {
	return s.searchColumn(ctx, "category", category)
}

func (s *RecipeService) searchColumn(ctx context.Context, column, needle string) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	like := "%" + escapeLike(needle) + "%"
	err := s.db.WithContext(ctx).
		Where("LOWER("+column+") LIKE LOWER(?) ESCAPE '\\'", like).
		Find(&recipes).Error
	return recipes, err
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// SearchByIngredient lists recipes where any ingredient contains the query
// case-insensitively. Matching runs element-wise in-process so a needle
// never matches across two adjacent ingredients.
func (s *RecipeService) SearchByIngredient(ctx context.Context, ingredient string) ([]models.Recipe, error) {
	var all []models.Recipe
	if err := s.db.WithContext(ctx).Find(&all).Error; err != nil {
		return nil, err
	}
	matched := make([]models.Recipe, 0, len(all))
	for _, r := range all {
		if query.AnyContainsFold(r.Ingredients, ingredient) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// LessIngredients lists recipes with fewer than max ingredients.
func (s *RecipeService) LessIngredients(ctx context.Context, max int) ([]models.Recipe, error) {
	var all []models.Recipe
	if err := s.db.WithContext(ctx).Find(&all).Error; err != nil {
		return nil, err
	}
	matched := make([]models.Recipe, 0, len(all))
	for _, r := range all {
		if len(r.Ingredients) < max {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// EstimatedTimeRange lists recipes with min <= estimated_time <= max,
// bounds inclusive.
func (s *RecipeService) EstimatedTimeRange(ctx context.Context, min, max int) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	err := s.db.WithContext(ctx).
		Where("estimated_time >= ? AND estimated_time <= ?", min, max).
		Find(&recipes).Error
	return recipes, err
}

// Count returns the total number of recipes.
func (s *RecipeService) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).Count(&count).Error
	return count, err
}

// DistinctCategories counts distinct category values across all recipes.
func (s *RecipeService) DistinctCategories(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Distinct("category").Count(&count).Error
	return count, err
}

// DistinctIngredients counts distinct ingredient names across all recipes.
// Each element is normalized (lower-cased, digits stripped) before
// deduplication, so "Sugar" and "sugar2" count once.
func (s *RecipeService) DistinctIngredients(ctx context.Context) (int, error) {
	var all []models.Recipe
	if err := s.db.WithContext(ctx).Find(&all).Error; err != nil {
		return 0, err
	}
	var ingredients []string
	for _, r := range all {
		ingredients = append(ingredients, r.Ingredients...)
	}
	return query.CountDistinct(ingredients, query.NormalizeIngredient), nil
}

// AvgEstimatedTime averages estimated_time over every recipe. Zero recipes
// yields query.ErrNoData.
func (s *RecipeService) AvgEstimatedTime(ctx context.Context) (float64, error) {
	times, err := s.floatColumn(ctx, func(r models.Recipe) float64 { return float64(r.EstimatedTime) })
	if err != nil {
		return 0, err
	}
	return query.Average(times)
}

// AvgIngredients averages the ingredient count over every recipe.
func (s *RecipeService) AvgIngredients(ctx context.Context) (float64, error) {
	counts, err := s.floatColumn(ctx, func(r models.Recipe) float64 { return float64(len(r.Ingredients)) })
	if err != nil {
		return 0, err
	}
	return query.Average(counts)
}

func (s *RecipeService) floatColumn(ctx context.Context, project func(models.Recipe) float64) ([]float64, error) {
	var all []models.Recipe
	if err := s.db.WithContext(ctx).Find(&all).Error; err != nil {
		return nil, err
	}
	values := make([]float64, len(all))
	for i, r := range all {
		values[i] = project(r)
	}
	return values, nil
}

// IsNoData reports whether err marks an aggregate over zero recipes.
func IsNoData(err error) bool {
	return errors.Is(err, query.ErrNoData)
}
