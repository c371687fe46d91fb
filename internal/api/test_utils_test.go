package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/middleware"
	"github.com/tastebook/backend/internal/mocks"
	"github.com/tastebook/backend/internal/service"
	"github.com/tastebook/backend/internal/testhelpers"
)

// testEnv bundles the router and backing services for handler tests.
type testEnv struct {
	Router  *gin.Engine
	DB      *gorm.DB
	Gateway *mocks.Gateway
	Auth    *service.AuthService
}

// setupTestEnv builds a router backed by an in-memory database, an
// in-memory session store, and a canned gateway.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	logger := zap.NewNop()
	gateway := &mocks.Gateway{}

	authService := service.NewAuthService(db, mocks.NewSessionStore(), "test-secret", time.Hour)
	recipeService := service.NewRecipeService(db, gateway, logger)
	favoriteService := service.NewFavoriteService(db)

	authHandler := NewAuthHandler(authService, time.Hour, logger)
	recipeHandler := NewRecipeHandler(recipeService, favoriteService, logger)

	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)

	public := v1.Group("")
	public.Use(middleware.OptionalAuth(authService))
	recipeHandler.RegisterRoutes(public)

	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(authService))
	authHandler.RegisterProtectedRoutes(protected)
	recipeHandler.RegisterProtectedRoutes(protected)

	return &testEnv{Router: router, DB: db, Gateway: gateway, Auth: authService}
}

// performRequest issues a request against the test router, attaching the
// session token as a bearer header when provided.
func (e *testEnv) performRequest(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// signupAndLogin registers a user through the API and returns the session
// token from the response.
func (e *testEnv) signupAndLogin(t *testing.T, username string) string {
	t.Helper()

	w := e.performRequest(t, http.MethodPost, "/api/v1/auth/register", "", SignupRequest{
		FirstName: "Test",
		LastName:  "User",
		Username:  username,
		Email:     username + "@example.com",
		Password:  "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
