package cityinfo

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/i474232898/cityinfo-aggregation/internal/metrics"
)

// Service combines upstream city and weather data with the local recipe store.
type Service struct {
	store    Store
	provider Provider
}

// NewService creates a new Service.
func NewService(store Store, provider Provider) *Service {
	return &Service{
		store:    store,
		provider: provider,
	}
}

// GetCityInfo fetches city details and the forecast for cityID and merges them
// with the city's recipes. A weather failure degrades to the placeholder
// forecast; only the detail fetch can fail the call.
func (s *Service) GetCityInfo(ctx context.Context, cityID string) (CityInfo, error) {
	details, err := s.fetchDetails(ctx, cityID)
	if err != nil {
		return CityInfo{}, err
	}

	return CityInfo{
		CityDetails:        details,
		WeatherPredictions: s.fetchPredictions(ctx, cityID),
		Recipes:            s.store.ListRecipes(cityID),
	}, nil
}

// SubmitRecipe validates content, confirms the city exists upstream and stores
// the recipe.
func (s *Service) SubmitRecipe(ctx context.Context, cityID, content string) (Recipe, error) {
	if err := ValidateContent(content); err != nil {
		return Recipe{}, err
	}

	if _, err := s.fetchDetails(ctx, cityID); err != nil {
		return Recipe{}, err
	}

	recipe := s.store.AddRecipe(cityID, content)
	metrics.RecipesStored.Inc()
	log.Debug().Str("city_id", cityID).Str("recipe_id", recipe.ID).Msg("recipe added")
	return recipe, nil
}

// RemoveRecipe deletes a recipe. Existence is decided from local state only;
// a city without recorded recipes is reported as not found.
func (s *Service) RemoveRecipe(cityID, recipeID string) error {
	if len(s.store.ListRecipes(cityID)) == 0 {
		return ErrCityNotFound
	}
	if !s.store.DeleteRecipe(cityID, recipeID) {
		return ErrRecipeNotFound
	}

	metrics.RecipesStored.Dec()
	log.Debug().Str("city_id", cityID).Str("recipe_id", recipeID).Msg("recipe deleted")
	return nil
}

// ProbeUpstream checks that the upstream provider answers.
func (s *Service) ProbeUpstream(ctx context.Context) error {
	return s.provider.Ping(ctx)
}

func (s *Service) fetchDetails(ctx context.Context, cityID string) (CityDetails, error) {
	raw, err := s.provider.FetchCity(ctx, cityID)
	if err != nil {
		if errors.Is(err, ErrCityNotFound) {
			return CityDetails{}, ErrCityNotFound
		}
		var upErr *UpstreamError
		if errors.As(err, &upErr) {
			return CityDetails{}, err
		}
		return CityDetails{}, &UpstreamError{CityID: cityID, Err: err}
	}
	return NormalizeCity(raw), nil
}

func (s *Service) fetchPredictions(ctx context.Context, cityID string) []WeatherPrediction {
	raw, err := s.provider.FetchWeather(ctx, cityID)
	if err != nil {
		log.Warn().Err(err).Str("city_id", cityID).Str("provider", s.provider.Name()).
			Msg("weather fetch failed; using placeholder forecast")
		metrics.WeatherFallbacks.Inc()
		return PlaceholderPredictions()
	}

	predictions, ok := NormalizeWeather(raw)
	if !ok {
		log.Warn().Str("city_id", cityID).Str("provider", s.provider.Name()).
			Msg("malformed weather payload; using placeholder forecast")
		metrics.WeatherFallbacks.Inc()
		return PlaceholderPredictions()
	}
	return predictions
}
