package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.performRequest(t, http.MethodPost, "/api/v1/auth/register", "", SignupRequest{
		FirstName: "Alice",
		LastName:  "Smith",
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "password123",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)

	// Session cookie is set under the well-known key.
	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "session_token" && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "session cookie not set")
}

func TestSignupDuplicateEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	env.signupAndLogin(t, "alice")

	w := env.performRequest(t, http.MethodPost, "/api/v1/auth/register", "", SignupRequest{
		FirstName: "Alan",
		LastName:  "Stone",
		Username:  "alice",
		Email:     "other@example.com",
		Password:  "password456",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Username already taken")
}

func TestSignupValidation(t *testing.T) {
	env := setupTestEnv(t)

	// Short password rejected before touching the database.
	w := env.performRequest(t, http.MethodPost, "/api/v1/auth/register", "", SignupRequest{
		FirstName: "Alice",
		LastName:  "Smith",
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.performRequest(t, http.MethodPost, "/api/v1/auth/register", "", SignupRequest{
		FirstName: "Alice",
		LastName:  "Smith",
		Username:  "alice",
		Email:     "not-an-email",
		Password:  "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	env.signupAndLogin(t, "alice")

	w := env.performRequest(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Username: "alice",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := setupTestEnv(t)
	env.signupAndLogin(t, "alice")

	// Wrong password and unknown username produce the same response.
	for _, req := range []LoginRequest{
		{Username: "alice", Password: "wrongpass1"},
		{Username: "nobody", Password: "password123"},
	} {
		w := env.performRequest(t, http.MethodPost, "/api/v1/auth/login", "", req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials.")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	env := setupTestEnv(t)
	token := env.signupAndLogin(t, "alice")

	w := env.performRequest(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The same token no longer grants access.
	w = env.performRequest(t, http.MethodGet, "/api/v1/favorites", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnonymousFavoritesUnauthorized(t *testing.T) {
	env := setupTestEnv(t)

	w := env.performRequest(t, http.MethodGet, "/api/v1/favorites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Access unauthorized.")
}
