package mocks

import (
	"context"

	"github.com/tastebook/backend/internal/service"
)

// Gateway is a canned service.RecipeSearcher for tests.
type Gateway struct {
	Hits    []service.SearchHit
	Err     error
	Queries []string
}

var _ service.RecipeSearcher = (*Gateway)(nil)

func (g *Gateway) Search(ctx context.Context, query string) ([]service.SearchHit, error) {
	g.Queries = append(g.Queries, query)
	if g.Err != nil {
		return nil, g.Err
	}
	return g.Hits, nil
}
