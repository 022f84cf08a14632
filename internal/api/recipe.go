package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantrymarket/backend/internal/middleware"
	"github.com/pantrymarket/backend/internal/models"
	"github.com/pantrymarket/backend/internal/service"
)

// RecipeHandler serves the recipe surface: CRUD, searches, range filters,
// collection stats and the shopping-list mail-out.
type RecipeHandler struct {
	recipes *service.RecipeService
	users   *service.UserService
	email   *service.EmailService
}

func NewRecipeHandler(recipes *service.RecipeService, users *service.UserService, email *service.EmailService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, users: users, email: email}
}

// parseRecipeID reads the :id path parameter as a UUID; malformed ids are a
// validation error (422), not a missing record.
func parseRecipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}

func mustUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return uuid.Nil, false
	}
	return userID, true
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	recipe := &models.Recipe{
		Title:         req.Title,
		Description:   req.Description,
		Ingredients:   models.JSONBStringArray(req.Ingredients),
		Instructions:  req.Instructions,
		AuthorID:      userID,
		Category:      req.Category,
		EstimatedTime: req.EstimatedTime,
	}
	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	var patch models.RecipePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted successfully"})
}

func (h *RecipeHandler) SearchByTitle(c *gin.Context) {
	recipes, err := h.recipes.SearchByTitle(c.Request.Context(), c.Query("title"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) SearchByIngredient(c *gin.Context) {
	recipes, err := h.recipes.SearchByIngredient(c.Request.Context(), c.Query("ing"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) SearchByCategory(c *gin.Context) {
	recipes, err := h.recipes.SearchByCategory(c.Request.Context(), c.Query("cat"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// LessIngredients lists recipes with fewer ingredients than ?max=.
func (h *RecipeHandler) LessIngredients(c *gin.Context) {
	max, err := strconv.Atoi(c.DefaultQuery("max", "0"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid max"})
		return
	}
	recipes, err := h.recipes.LessIngredients(c.Request.Context(), max)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// EstimatedTimeRange lists recipes whose estimated time lies inside the
// inclusive [min_time, max_time] window.
func (h *RecipeHandler) EstimatedTimeRange(c *gin.Context) {
	min, err := strconv.Atoi(c.DefaultQuery("min_time", "0"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid min_time"})
		return
	}
	max, err := strconv.Atoi(c.DefaultQuery("max_time", "0"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid max_time"})
		return
	}
	recipes, err := h.recipes.EstimatedTimeRange(c.Request.Context(), min, max)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Collection stats. Averages over zero recipes answer with a message rather
// than a number.

func (h *RecipeHandler) StatsCount(c *gin.Context) {
	count, err := h.recipes.Count(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_recipes": count})
}

func (h *RecipeHandler) StatsCategories(c *gin.Context) {
	count, err := h.recipes.DistinctCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_categories": count})
}

func (h *RecipeHandler) StatsIngredients(c *gin.Context) {
	count, err := h.recipes.DistinctIngredients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_ingredients": count})
}

func (h *RecipeHandler) StatsAvgTime(c *gin.Context) {
	avg, err := h.recipes.AvgEstimatedTime(c.Request.Context())
	if err != nil {
		if service.IsNoData(err) {
			c.JSON(http.StatusOK, gin.H{"message": "no recipes found"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avg_estimated_time": avg})
}

func (h *RecipeHandler) StatsAvgIngredients(c *gin.Context) {
	avg, err := h.recipes.AvgIngredients(c.Request.Context())
	if err != nil {
		if service.IsNoData(err) {
			c.JSON(http.StatusOK, gin.H{"message": "no recipes found"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avg_ingredients": avg})
}

// ShoppingList mails the recipe's ingredient list to the caller.
func (h *RecipeHandler) ShoppingList(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.email.SendShoppingList(user, recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send shopping list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "shop list sent to " + user.Email})
}
