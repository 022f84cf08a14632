package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrymarket/backend/internal/models"
	"github.com/pantrymarket/backend/internal/service"
)

// UserHandler serves the caller-scoped surface: profile, owned recipes and
// the favorites index.
type UserHandler struct {
	users   *service.UserService
	recipes *service.RecipeService
}

func NewUserHandler(users *service.UserService, recipes *service.RecipeService) *UserHandler {
	return &UserHandler{users: users, recipes: recipes}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.UpdateUser(c.Request.Context(), userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// MyRecipes lists the recipes the caller owns.
func (h *UserHandler) MyRecipes(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	recipes, err := h.recipes.ListByAuthor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *UserHandler) MyRecipesCount(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	count, err := h.users.RecipesCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes_count": count})
}

// AddFavorite bookmarks a recipe; favoriting twice is a no-op.
func (h *UserHandler) AddFavorite(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	recipeID, ok := parseRecipeID(c)
	if !ok {
		return
	}
	if err := h.users.AddFavorite(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe added to favorites"})
}

// RemoveFavorite drops a bookmark; removing an absent one is a no-op.
func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	recipeID, ok := parseRecipeID(c)
	if !ok {
		return
	}
	if err := h.users.RemoveFavorite(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe removed from favorites"})
}

func (h *UserHandler) ListFavorites(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	recipes, err := h.users.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *UserHandler) FavoritesCount(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	count, err := h.users.FavoritesCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites_count": count})
}
