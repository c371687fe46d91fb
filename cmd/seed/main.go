// Command seed populates the recipe catalog from the external search
// gateway, falling back to a canned placeholder list when the gateway is
// unreachable.
package main

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/tastebook/backend/config"
	"github.com/tastebook/backend/internal/database"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/service"
)

var placeholderRecipes = []models.Recipe{
	{ID: 1, Title: "Spaghetti Carbonara", ImageURL: "https://img.spoonacular.com/recipes/1-556x370.jpg", Vegetarian: false},
	{ID: 2, Title: "Chicken Alfredo", ImageURL: "https://img.spoonacular.com/recipes/2-556x370.jpg"},
	{ID: 3, Title: "Beef Tacos", ImageURL: "https://img.spoonacular.com/recipes/3-556x370.jpg"},
	{ID: 4, Title: "Vegetable Stir Fry", ImageURL: "https://img.spoonacular.com/recipes/4-556x370.jpg", Vegetarian: true, Vegan: true},
	{ID: 5, Title: "Caesar Salad", ImageURL: "https://img.spoonacular.com/recipes/5-556x370.jpg", Vegetarian: true},
	{ID: 6, Title: "Margherita Pizza", ImageURL: "https://img.spoonacular.com/recipes/6-556x370.jpg", Vegetarian: true},
	{ID: 7, Title: "Grilled Cheese Sandwich", ImageURL: "https://img.spoonacular.com/recipes/7-556x370.jpg", Vegetarian: true},
	{ID: 8, Title: "Tomato Soup", ImageURL: "https://img.spoonacular.com/recipes/8-556x370.jpg", Vegetarian: true, Vegan: true},
	{ID: 9, Title: "BBQ Chicken Wings", ImageURL: "https://img.spoonacular.com/recipes/9-556x370.jpg", Ketogenic: true},
	{ID: 10, Title: "Vegetable Curry", ImageURL: "https://img.spoonacular.com/recipes/10-556x370.jpg", Vegetarian: true, Vegan: true},
	{ID: 11, Title: "Pasta Primavera", ImageURL: "https://img.spoonacular.com/recipes/11-556x370.jpg", Vegetarian: true},
	{ID: 12, Title: "Sushi Rolls", ImageURL: "https://img.spoonacular.com/recipes/12-556x370.jpg"},
	{ID: 13, Title: "French Toast", ImageURL: "https://img.spoonacular.com/recipes/13-556x370.jpg", Vegetarian: true},
	{ID: 14, Title: "Shrimp Scampi", ImageURL: "https://img.spoonacular.com/recipes/14-556x370.jpg", Ketogenic: true},
	{ID: 15, Title: "Avocado Toast", ImageURL: "https://img.spoonacular.com/recipes/15-556x370.jpg", Vegetarian: true, Vegan: true},
	{ID: 16, Title: "Chili Con Carne", ImageURL: "https://img.spoonacular.com/recipes/16-556x370.jpg"},
	{ID: 17, Title: "Falafel Wrap", ImageURL: "https://img.spoonacular.com/recipes/17-556x370.jpg", Vegetarian: true, Vegan: true},
	{ID: 18, Title: "Chicken Noodle Soup", ImageURL: "https://img.spoonacular.com/recipes/18-556x370.jpg"},
	{ID: 19, Title: "Beef Stew", ImageURL: "https://img.spoonacular.com/recipes/19-556x370.jpg", Ketogenic: true},
	{ID: 20, Title: "Greek Salad", ImageURL: "https://img.spoonacular.com/recipes/20-556x370.jpg", Vegetarian: true},
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	recipes := placeholderRecipes
	gateway := service.NewSpoonacularClient(cfg.SpoonacularAPIKey, cfg.SpoonacularAPIURL, logger)
	hits, err := gateway.Search(ctx, "")
	if err != nil {
		logger.Warn("gateway unavailable, seeding placeholder recipes", zap.Error(err))
	} else {
		recipes = make([]models.Recipe, 0, len(hits))
		for _, hit := range hits {
			recipes = append(recipes, models.Recipe{
				ID:       hit.ID,
				Title:    hit.Title,
				ImageURL: hit.Image,
			})
		}
	}

	if len(recipes) == 0 {
		logger.Info("nothing to seed")
		return
	}

	err = db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&recipes).Error
	if err != nil {
		logger.Fatal("failed to seed recipes", zap.Error(err))
	}

	logger.Info("database seeded", zap.Int("recipes", len(recipes)))
}
