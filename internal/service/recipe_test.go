package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pantrymarket/backend/internal/models"
)

func createTestRecipe(t *testing.T, db *gorm.DB, authorID uuid.UUID, title, category string, ingredients []string, estimatedTime int) *models.Recipe {
	t.Helper()
	svc := NewRecipeService(db)
	recipe := &models.Recipe{
		Title:         title,
		Description:   "test recipe",
		Ingredients:   models.JSONBStringArray(ingredients),
		Instructions:  "mix and cook",
		AuthorID:      authorID,
		Category:      category,
		EstimatedTime: estimatedTime,
	}
	created, err := svc.CreateRecipe(context.Background(), recipe)
	require.NoError(t, err)
	return created
}

func TestRecipeCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "chef")
	svc := NewRecipeService(db)

	recipe := createTestRecipe(t, db, user.ID, "Pancakes", "Breakfast", []string{"flour", "milk", "eggs"}, 20)
	require.NotEqual(t, uuid.Nil, recipe.ID)

	got, err := svc.GetRecipe(context.Background(), recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Title)
	assert.Equal(t, models.JSONBStringArray{"flour", "milk", "eggs"}, got.Ingredients)
}

func TestUpdateRecipeOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	svc := NewRecipeService(db)

	recipe := createTestRecipe(t, db, owner.ID, "Soup", "Dinner", []string{"water"}, 30)

	title := "Better Soup"
	_, err := svc.UpdateRecipe(context.Background(), recipe.ID, other.ID, models.RecipePatch{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateRecipe(context.Background(), recipe.ID, owner.ID, models.RecipePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Better Soup", updated.Title)
}

func TestDeleteRecipeOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	svc := NewRecipeService(db)

	recipe := createTestRecipe(t, db, owner.ID, "Soup", "Dinner", []string{"water"}, 30)

	err := svc.DeleteRecipe(context.Background(), recipe.ID, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeleteRecipe(context.Background(), recipe.ID, owner.ID))
	_, err = svc.GetRecipe(context.Background(), recipe.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRecipeRemovesFavorites(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner")
	fan := createTestUser(t, db, "fan")
	recipes := NewRecipeService(db)
	users := NewUserService(db)

	recipe := createTestRecipe(t, db, owner.ID, "Soup", "Dinner", []string{"water"}, 30)
	require.NoError(t, users.AddFavorite(context.Background(), fan.ID, recipe.ID))

	require.NoError(t, recipes.DeleteRecipe(context.Background(), recipe.ID, owner.ID))

	count, err := users.FavoritesCount(context.Background(), fan.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSearchByTitle(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "chef")
	svc := NewRecipeService(db)

	createTestRecipe(t, db, user.ID, "Chicken Curry", "Dinner", []string{"chicken"}, 45)
	createTestRecipe(t, db, user.ID, "Beef Stew", "Dinner", []string{"beef"}, 90)

	found, err := svc.SearchByTitle(context.Background(), "CURRY")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Chicken Curry", found[0].Title)

	// Empty query matches everything.
	found, err = svc.SearchByTitle(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// LIKE metacharacters are literals, not wildcards.
	found, err = svc.SearchByTitle(context.Background(), "%")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSearchByIngredient(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "chef")
	svc := NewRecipeService(db)

	createTestRecipe(t, db, user.ID, "Cake", "Dessert", []string{"flour", "Brown Sugar"}, 60)
	createTestRecipe(t, db, user.ID, "Salad", "Lunch", []string{"lettuce", "tomato"}, 10)

	found, err := svc.SearchByIngredient(context.Background(), "sugar")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Cake", found[0].Title)

	found, err = svc.SearchByIngredient(context.Background(), "butter")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestLessIngredients(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "chef")
	svc := NewRecipeService(db)

	createTestRecipe(t, db, user.ID, "Toast", "Breakfast", []string{"bread"}, 5)
	createTestRecipe(t, db, user.ID, "Cake", "Dessert", []string{"flour", "sugar", "eggs"}, 60)

	found, err := svc.LessIngredients(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Toast", found[0].Title)
}

func TestEstimatedTimeRangeInclusive(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "chef")
	svc := NewRecipeService(db)

	for _, mins := range []int{5, 10, 20, 25} {
		createTestRecipe(t, db, user.ID, "Recipe", "Any", []string{"x"}, mins)
	}

	found, err := svc.EstimatedTimeRange(context.Background(), 10, 20)
	require.NoError(t, err)
	require.Len(t, found, 2)

	// Both bounds are included.
	times := []int{found[0].EstimatedTime, found[1].EstimatedTime}
	assert.Contains(t, times, 10)
	assert.Contains(t, times, 20)
}

func TestDistinctCategoriesAndIngredients(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "chef")
	svc := NewRecipeService(db)

	createTestRecipe(t, db, user.ID, "Cake", "Dessert", []string{"Sugar", "flour"}, 60)
	createTestRecipe(t, db, user.ID, "Pie", "Dessert", []string{"sugar2", "Flour", "apples"}, 90)

	categories, err := svc.DistinctCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), categories)

	// "Sugar"/"sugar2" and "flour"/"Flour" collapse after normalization.
	ingredients, err := svc.DistinctIngredients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ingredients)
}

func TestAveragesOverRecipes(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "chef")
	svc := NewRecipeService(db)

	createTestRecipe(t, db, user.ID, "Toast", "Breakfast", []string{"bread"}, 5)
	createTestRecipe(t, db, user.ID, "Cake", "Dessert", []string{"flour", "sugar", "eggs"}, 55)

	avgTime, err := svc.AvgEstimatedTime(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 30.0, avgTime, 0.0001)

	avgIngredients, err := svc.AvgIngredients(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 2.0, avgIngredients, 0.0001)
}

func TestAveragesNoRecipes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)

	_, err := svc.AvgEstimatedTime(context.Background())
	assert.True(t, IsNoData(err))

	_, err = svc.AvgIngredients(context.Background())
	assert.True(t, IsNoData(err))
}

func TestRecipeCount(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "chef")
	svc := NewRecipeService(db)

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	createTestRecipe(t, db, user.ID, "Toast", "Breakfast", []string{"bread"}, 5)
	count, err = svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
