package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrymarket/backend/internal/models"
)

// UserService manages accounts and the favorites index. Favorites are weak
// references stored as individual join rows, so adding or removing one is a
// single-row write and two concurrent requests cannot clobber each other's
// updates.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// UpdateUser applies a partial account update; duplicate username or email
// is a conflict.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return nil, err
	}
	changes := patch.Changes()
	if len(changes) > 0 {
		var count int64
		q := s.db.WithContext(ctx).Model(&models.User{}).Where("id <> ?", id)
		if patch.Username != nil && patch.Email != nil {
			q = q.Where("username = ? OR email = ?", *patch.Username, *patch.Email)
		} else if patch.Username != nil {
			q = q.Where("username = ?", *patch.Username)
		} else {
			q = q.Where("email = ?", *patch.Email)
		}
		if err := q.Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrConflict
		}
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return s.GetUser(ctx, id)
}

// AddFavorite records a weak reference from user to recipe. Favoriting the
// same recipe twice is a no-op.
func (s *UserService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return notFound(err)
	}
	fav := models.RecipeFavorite{RecipeID: recipeID, UserID: userID}
	return s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		FirstOrCreate(&fav).Error
}

// RemoveFavorite drops the weak reference; removing an absent favorite is a
// no-op.
func (s *UserService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return notFound(err)
	}
	return s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&models.RecipeFavorite{}).Error
}

// RecipesCount returns how many recipes the user owns.
func (s *UserService) RecipesCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", userID).Count(&count).Error
	return count, err
}

// FavoritesCount returns how many recipes the user has favorited.
func (s *UserService) FavoritesCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.RecipeFavorite{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ListFavorites returns the recipes the user has favorited, oldest first.
func (s *UserService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	err := s.db.WithContext(ctx).
		Joins("JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.id").
		Where("recipe_favorites.user_id = ?", userID).
		Order("recipe_favorites.created_at").
		Find(&recipes).Error
	return recipes, err
}
