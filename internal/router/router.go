package router

import (
	"github.com/gin-gonic/gin"

	"github.com/tastebook/backend/internal/api"
	"github.com/tastebook/backend/internal/middleware"
)

// Setup configures the application routes, grouped by auth requirement.
func Setup(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	imageHandler *api.ImageHandler,
	healthHandler *api.HealthHandler,
	validator middleware.TokenValidator,
	corsOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(corsOrigins))

	healthHandler.RegisterRoutes(router)

	v1 := router.Group("/api/v1")

	// Public routes; the recipe listing resolves identity when present
	// to annotate favorites.
	authHandler.RegisterRoutes(v1)
	public := v1.Group("")
	public.Use(middleware.OptionalAuth(validator))
	recipeHandler.RegisterRoutes(public)

	// Protected routes.
	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(validator))
	authHandler.RegisterProtectedRoutes(protected)
	recipeHandler.RegisterProtectedRoutes(protected)
	if imageHandler != nil {
		imageHandler.RegisterProtectedRoutes(protected)
	}

	return router
}
