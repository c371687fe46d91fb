package api

import "github.com/tastebook/backend/internal/models"

type SignupRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type RecipeRequest struct {
	Title      string `json:"title" binding:"required"`
	ImageURL   string `json:"image_url" binding:"required"`
	Vegetarian bool   `json:"vegetarian"`
	Vegan      bool   `json:"vegan"`
	Ketogenic  bool   `json:"ketogenic"`
}

// RecipeView is a recipe annotated with the caller's favorite status.
type RecipeView struct {
	models.Recipe
	Favorited bool `json:"favorited"`
}

type RecipeListResponse struct {
	Recipes []RecipeView `json:"recipes"`
	Message string       `json:"message,omitempty"`
}
