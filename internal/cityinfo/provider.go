package cityinfo

import (
	"context"
)

// Provider abstracts the upstream city/weather API. Payloads are returned as
// loosely-typed decoded JSON; callers normalize them.
//
// FetchCity must return ErrCityNotFound when the upstream reports the city
// does not exist.
type Provider interface {
	Name() string
	FetchCity(ctx context.Context, cityID string) (any, error)
	FetchWeather(ctx context.Context, cityID string) (any, error)
	Ping(ctx context.Context) error
}

// Store is the contract the in-memory recipe store must satisfy.
type Store interface {
	ListRecipes(cityID string) []Recipe
	AddRecipe(cityID, content string) Recipe
	DeleteRecipe(cityID, recipeID string) bool
}
