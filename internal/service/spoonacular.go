package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ErrGatewayUnavailable is returned when the external search API responds
// with a non-success status. Callers degrade to empty results.
var ErrGatewayUnavailable = errors.New("recipe gateway unavailable")

// SearchHit is one result from the external search API.
type SearchHit struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// RecipeSearcher is the external recipe search gateway.
type RecipeSearcher interface {
	Search(ctx context.Context, query string) ([]SearchHit, error)
}

// SpoonacularClient queries the spoonacular complexSearch endpoint.
type SpoonacularClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

var _ RecipeSearcher = (*SpoonacularClient)(nil)

func NewSpoonacularClient(apiKey, baseURL string, logger *zap.Logger) *SpoonacularClient {
	return &SpoonacularClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

type complexSearchResponse struct {
	Results []SearchHit `json:"results"`
}

// Search performs the outbound call with one retry on transport errors and
// 5xx responses. Any other non-200 status maps to ErrGatewayUnavailable.
func (c *SpoonacularClient) Search(ctx context.Context, query string) ([]SearchHit, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("apiKey", c.apiKey)
	params.Set("number", strconv.Itoa(100))
	endpoint := fmt.Sprintf("%s/recipes/complexSearch?%s", c.baseURL, params.Encode())

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		hits, retryable, err := c.doSearch(ctx, endpoint)
		if err == nil {
			return hits, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
		c.logger.Warn("gateway request failed, retrying",
			zap.String("query", query),
			zap.Error(err),
		)
	}
	return nil, lastErr
}

func (c *SpoonacularClient) doSearch(ctx context.Context, endpoint string) (hits []SearchHit, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode >= 500, fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var body complexSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false, fmt.Errorf("%w: decode response: %v", ErrGatewayUnavailable, err)
	}
	return body.Results, false, nil
}
