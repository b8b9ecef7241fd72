package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/cityinfo-aggregation/internal/cityinfo"
)

func TestListRecipesUnknownCityIsEmpty(t *testing.T) {
	s := NewMemoryStore()

	recipes := s.ListRecipes("42")
	require.NotNil(t, recipes)
	assert.Empty(t, recipes)
}

func TestAddRecipeThenList(t *testing.T) {
	s := NewMemoryStore()

	first := s.AddRecipe("1", "a first recipe body")
	second := s.AddRecipe("1", "a second recipe body")

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	recipes := s.ListRecipes("1")
	require.Len(t, recipes, 2)
	assert.Equal(t, []cityinfo.Recipe{first, second}, recipes)

	assert.Empty(t, s.ListRecipes("2"), "recipes must stay scoped to their city")
}

func TestListRecipesReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.AddRecipe("1", "some recipe text")

	recipes := s.ListRecipes("1")
	recipes[0].Content = "mutated"

	assert.Equal(t, "some recipe text", s.ListRecipes("1")[0].Content)
}

func TestDeleteRecipeKeepsOrder(t *testing.T) {
	s := NewMemoryStore()
	a := s.AddRecipe("1", "recipe number one")
	b := s.AddRecipe("1", "recipe number two")
	c := s.AddRecipe("1", "recipe number three")

	require.True(t, s.DeleteRecipe("1", b.ID))
	assert.Equal(t, []cityinfo.Recipe{a, c}, s.ListRecipes("1"))

	assert.False(t, s.DeleteRecipe("1", b.ID), "second delete of the same id")
}

func TestDeleteRecipeMissing(t *testing.T) {
	s := NewMemoryStore()
	s.AddRecipe("1", "recipe number one")

	assert.False(t, s.DeleteRecipe("9", "anything"))
	assert.False(t, s.DeleteRecipe("1", "unknown"))
	assert.Len(t, s.ListRecipes("1"), 1)
}

func TestDeleteLastRecipeDropsCity(t *testing.T) {
	s := NewMemoryStore()
	r := s.AddRecipe("1", "recipe number one")

	require.True(t, s.DeleteRecipe("1", r.ID))
	assert.Empty(t, s.ListRecipes("1"))
	assert.NotContains(t, s.data, "1")
}

func TestConcurrentAddsDoNotCollide(t *testing.T) {
	s := NewMemoryStore()

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.AddRecipe("1", fmt.Sprintf("concurrent recipe %d", i))
		}(i)
	}
	wg.Wait()

	recipes := s.ListRecipes("1")
	require.Len(t, recipes, n)

	seen := make(map[string]bool, n)
	for _, r := range recipes {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}
