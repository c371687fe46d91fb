package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/models"
)

// FavoriteState is the result of a toggle.
type FavoriteState string

const (
	FavoriteAdded   FavoriteState = "added"
	FavoriteRemoved FavoriteState = "removed"
)

// FavoriteService maintains the user/recipe favorites ledger.
type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Toggle flips favorite membership for the (user, recipe) pair: an
// existing row is removed, a missing one is inserted. The pair never
// holds more than one row.
func (s *FavoriteService) Toggle(ctx context.Context, userID uuid.UUID, recipeID int64) (FavoriteState, error) {
	var state FavoriteState
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var fav models.Favorite
		err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&fav).Error
		switch {
		case err == nil:
			state = FavoriteRemoved
			return tx.Delete(&fav).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			state = FavoriteAdded
			return tx.Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("toggle favorite: %w", err)
	}
	return state, nil
}

// ListIDs returns the set of recipe ids the user has favorited, used to
// annotate recipe listings.
func (s *FavoriteService) ListIDs(ctx context.Context, userID uuid.UUID) (map[int64]bool, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list favorite ids: %w", err)
	}

	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// ListRecipes returns the user's favorite recipes.
func (s *FavoriteService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ?", userID).
		Order("recipes.id").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("list favorite recipes: %w", err)
	}
	return recipes, nil
}
