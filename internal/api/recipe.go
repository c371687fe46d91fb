package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tastebook/backend/internal/middleware"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/service"
)

const defaultListLimit = 100

type RecipeHandler struct {
	recipes   *service.RecipeService
	favorites *service.FavoriteService
	logger    *zap.Logger
}

func NewRecipeHandler(recipes *service.RecipeService, favorites *service.FavoriteService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, favorites: favorites, logger: logger}
}

// RegisterRoutes registers the auth-optional listing endpoint.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes", h.ListRecipes)
}

// RegisterProtectedRoutes registers the endpoints requiring a session.
func (h *RecipeHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/favorite", h.ToggleFavorite)
	}
	router.GET("/favorites", h.ListFavorites)
}

// ListRecipes serves the home feed and title search. Without a query it
// returns the default listing; with one it searches locally and falls back
// to the external gateway. A gateway outage degrades to empty results with
// a message rather than an error status.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	limit := defaultListLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	var (
		recipes []models.Recipe
		message string
		err     error
	)
	if query := c.Query("q"); query != "" {
		recipes, err = h.recipes.SearchByTitle(c.Request.Context(), query)
		if errors.Is(err, service.ErrGatewayUnavailable) {
			message = "Error fetching recipes from the API."
			recipes, err = nil, nil
		}
	} else {
		recipes, err = h.recipes.List(c.Request.Context(), limit)
	}
	if err != nil {
		h.logger.Error("recipe listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	views, err := h.annotate(c, recipes)
	if err != nil {
		h.logger.Error("favorite annotation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, RecipeListResponse{Recipes: views, Message: message})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		h.logger.Error("recipe fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	recipe, err := h.recipes.Create(c.Request.Context(), recipeFields(req), userID)
	if err != nil {
		h.logger.Error("recipe create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	recipe, err := h.recipes.Update(c.Request.Context(), id, recipeFields(req), userID)
	if err != nil {
		h.writeRecipeError(c, err, "recipe update failed", "Failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	if err := h.recipes.Delete(c.Request.Context(), id, userID); err != nil {
		h.writeRecipeError(c, err, "recipe delete failed", "Failed to delete recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully", "id": id})
}

func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	state, err := h.favorites.Toggle(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		h.logger.Error("favorite toggle failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": state, "id": id})
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	recipes, err := h.favorites.ListRecipes(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("favorites listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}

	views := make([]RecipeView, len(recipes))
	for i, r := range recipes {
		views[i] = RecipeView{Recipe: r, Favorited: true}
	}
	c.JSON(http.StatusOK, RecipeListResponse{Recipes: views})
}

// annotate marks each recipe with the caller's favorite status. Anonymous
// callers get the listing unannotated.
func (h *RecipeHandler) annotate(c *gin.Context, recipes []models.Recipe) ([]RecipeView, error) {
	favoriteIDs := map[int64]bool{}
	if userID, ok := middleware.CurrentUserID(c); ok {
		var err error
		favoriteIDs, err = h.favorites.ListIDs(c.Request.Context(), userID)
		if err != nil {
			return nil, err
		}
	}

	views := make([]RecipeView, len(recipes))
	for i, r := range recipes {
		views[i] = RecipeView{Recipe: r, Favorited: favoriteIDs[r.ID]}
	}
	return views, nil
}

func (h *RecipeHandler) writeRecipeError(c *gin.Context, err error, logMsg, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access unauthorized."})
	default:
		h.logger.Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func recipeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return 0, false
	}
	return id, true
}

func recipeFields(req RecipeRequest) service.RecipeFields {
	return service.RecipeFields{
		Title:      req.Title,
		ImageURL:   req.ImageURL,
		Vegetarian: req.Vegetarian,
		Vegan:      req.Vegan,
		Ketogenic:  req.Ketogenic,
	}
}
