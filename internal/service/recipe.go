package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tastebook/backend/internal/models"
)

var (
	// ErrNotFound is returned when a recipe id does not exist.
	ErrNotFound = errors.New("recipe not found")
	// ErrUnauthorized is returned when a requester is not the recipe owner.
	ErrUnauthorized = errors.New("access unauthorized")
)

// syntheticIDFloor separates gateway-supplied ids from synthesized ones.
// User-submitted recipes get max(id)+1 with this floor, so the first
// synthesized id is 100001. Gateway hits above the floor are refused at
// ingestion to keep the two regimes from colliding.
const syntheticIDFloor = 100000

// RecipeFields is the mutable part of a recipe.
type RecipeFields struct {
	Title      string
	ImageURL   string
	Vegetarian bool
	Vegan      bool
	Ketogenic  bool
}

// RecipeService handles catalog operations.
type RecipeService struct {
	db      *gorm.DB
	gateway RecipeSearcher
	logger  *zap.Logger
}

func NewRecipeService(db *gorm.DB, gateway RecipeSearcher, logger *zap.Logger) *RecipeService {
	return &RecipeService{db: db, gateway: gateway, logger: logger}
}

// List returns up to limit recipes in id order.
func (s *RecipeService) List(ctx context.Context, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Order("id").Limit(limit).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// Get retrieves a recipe by id.
func (s *RecipeService) Get(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &recipe, nil
}

// SearchByTitle is a case-insensitive substring match against titles.
// When the local catalog has no match it consults the external gateway and
// persists the hits, so repeated searches are served locally.
func (s *RecipeService) SearchByTitle(ctx context.Context, query string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	like := "%" + strings.ToLower(query) + "%"
	if err := s.db.WithContext(ctx).Where("LOWER(title) LIKE ?", like).Order("id").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	if len(recipes) > 0 {
		return recipes, nil
	}

	hits, err := s.gateway.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.ingestHits(ctx, hits)
}

// ingestHits persists gateway results under their own ids. Hits whose id
// reaches into the synthesized range are skipped.
func (s *RecipeService) ingestHits(ctx context.Context, hits []SearchHit) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0, len(hits))
	for _, hit := range hits {
		if hit.ID > syntheticIDFloor {
			s.logger.Warn("skipping gateway hit with id in synthesized range",
				zap.Int64("id", hit.ID),
				zap.String("title", hit.Title),
			)
			continue
		}
		recipes = append(recipes, models.Recipe{
			ID:       hit.ID,
			Title:    hit.Title,
			ImageURL: hit.Image,
		})
	}
	if len(recipes) == 0 {
		return recipes, nil
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("persist gateway hits: %w", err)
	}
	return recipes, nil
}

// Create inserts a user-submitted recipe with a synthesized id strictly
// above every existing id.
func (s *RecipeService) Create(ctx context.Context, fields RecipeFields, ownerID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID int64
		if err := tx.Model(&models.Recipe{}).
			Select("COALESCE(MAX(id), 0)").
			Scan(&maxID).Error; err != nil {
			return fmt.Errorf("read max recipe id: %w", err)
		}
		if maxID < syntheticIDFloor {
			maxID = syntheticIDFloor
		}

		recipe = models.Recipe{
			ID:         maxID + 1,
			Title:      fields.Title,
			ImageURL:   fields.ImageURL,
			Vegetarian: fields.Vegetarian,
			Vegan:      fields.Vegan,
			Ketogenic:  fields.Ketogenic,
			UserID:     &ownerID,
		}
		return tx.Create(&recipe).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return &recipe, nil
}

// Update mutates a recipe. Only the owner may update; everyone else gets
// ErrUnauthorized and the row stays unchanged.
func (s *RecipeService) Update(ctx context.Context, id int64, fields RecipeFields, requesterID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !recipe.OwnedBy(requesterID) {
		return nil, ErrUnauthorized
	}

	updates := map[string]interface{}{
		"title":      fields.Title,
		"image_url":  fields.ImageURL,
		"vegetarian": fields.Vegetarian,
		"vegan":      fields.Vegan,
		"ketogenic":  fields.Ketogenic,
	}
	if err := s.db.WithContext(ctx).Model(recipe).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a recipe and its favorite rows in one transaction. Only
// the owner may delete.
func (s *RecipeService) Delete(ctx context.Context, id int64, requesterID uuid.UUID) error {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !recipe.OwnedBy(requesterID) {
		return ErrUnauthorized
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return fmt.Errorf("delete favorites: %w", err)
		}
		if err := tx.Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		return nil
	})
}
