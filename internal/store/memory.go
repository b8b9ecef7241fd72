package store

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/cityinfo-aggregation/internal/cityinfo"
)

// MemoryStore is a concurrency-safe in-memory recipe store keyed by city id.
type MemoryStore struct {
	mu sync.RWMutex

	// key: city id, value: recipes in insertion order
	data map[string][]cityinfo.Recipe

	newID func() string
}

// NewMemoryStore creates an empty MemoryStore that assigns UUIDv4 recipe ids.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:  make(map[string][]cityinfo.Recipe),
		newID: uuid.NewString,
	}
}

// ListRecipes returns a copy of the city's recipes in insertion order. A city
// without recipes yields an empty, non-nil slice.
func (s *MemoryStore) ListRecipes(cityID string) []cityinfo.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipes := s.data[cityID]
	out := make([]cityinfo.Recipe, len(recipes))
	copy(out, recipes)
	return out
}

// AddRecipe appends a new recipe with a fresh id to the city's sequence.
func (s *MemoryStore) AddRecipe(cityID, content string) cityinfo.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe := cityinfo.Recipe{
		ID:      s.newID(),
		Content: content,
	}
	s.data[cityID] = append(s.data[cityID], recipe)
	return recipe
}

// DeleteRecipe removes the recipe with recipeID from the city's sequence,
// keeping the survivors in order. It reports whether a recipe was removed.
// A city whose last recipe is removed is dropped from the map.
func (s *MemoryStore) DeleteRecipe(cityID, recipeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, ok := s.data[cityID]
	if !ok {
		return false
	}

	i := slices.IndexFunc(recipes, func(r cityinfo.Recipe) bool { return r.ID == recipeID })
	if i < 0 {
		return false
	}

	recipes = slices.Delete(recipes, i, i+1)
	if len(recipes) == 0 {
		delete(s.data, cityID)
		return true
	}
	s.data[cityID] = recipes
	return true
}
