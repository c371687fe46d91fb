package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tastebook/backend/internal/service"
)

func TestSpoonacularSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/complexSearch", r.URL.Path)
		assert.Equal(t, "pasta", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":716429,"title":"Pasta Carbonara","image":"http://img/716429.jpg"}]}`))
	}))
	defer srv.Close()

	client := service.NewSpoonacularClient("test-key", srv.URL, zap.NewNop())
	hits, err := client.Search(context.Background(), "pasta")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.EqualValues(t, 716429, hits[0].ID)
	assert.Equal(t, "Pasta Carbonara", hits[0].Title)
}

func TestSpoonacularSearchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	client := service.NewSpoonacularClient("test-key", srv.URL, zap.NewNop())
	_, err := client.Search(context.Background(), "pasta")
	assert.ErrorIs(t, err, service.ErrGatewayUnavailable)
}

func TestSpoonacularSearchRetriesOn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	client := service.NewSpoonacularClient("test-key", srv.URL, zap.NewNop())
	hits, err := client.Search(context.Background(), "pasta")
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.EqualValues(t, 2, calls.Load())
}

func TestSpoonacularSearchGivesUpAfterRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := service.NewSpoonacularClient("test-key", srv.URL, zap.NewNop())
	_, err := client.Search(context.Background(), "pasta")
	assert.ErrorIs(t, err, service.ErrGatewayUnavailable)
	assert.EqualValues(t, 2, calls.Load())
}
