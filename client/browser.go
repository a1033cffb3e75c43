package client

import (
	"context"

	"github.com/pageza/chefapp/backend/internal/models"
	"github.com/pageza/chefapp/backend/internal/types"
)

// Browser holds the recipe list and the filters it was fetched with.
// Every filter change fetches the list again.
type Browser struct {
	client  *Client
	filter  types.RecipeFilter
	recipes []models.Recipe
}

func NewBrowser(c *Client) *Browser {
	return &Browser{client: c, recipes: []models.Recipe{}}
}

func (b *Browser) Filter() types.RecipeFilter {
	return b.filter
}

func (b *Browser) Recipes() []models.Recipe {
	return b.recipes
}

// Load fetches the list for the current filters
func (b *Browser) Load(ctx context.Context) ([]models.Recipe, error) {
	recipes, err := b.client.ListRecipes(ctx, b.filter)
	if err != nil {
		return nil, err
	}
	b.recipes = recipes
	return recipes, nil
}

func (b *Browser) SetSearch(ctx context.Context, search string) ([]models.Recipe, error) {
	b.filter.Search = search
	return b.Load(ctx)
}

func (b *Browser) SetCategory(ctx context.Context, category string) ([]models.Recipe, error) {
	b.filter.Category = category
	return b.Load(ctx)
}

func (b *Browser) SetDifficulty(ctx context.Context, difficulty string) ([]models.Recipe, error) {
	b.filter.Difficulty = difficulty
	return b.Load(ctx)
}

func (b *Browser) SetCuisineType(ctx context.Context, cuisine string) ([]models.Recipe, error) {
	b.filter.CuisineType = cuisine
	return b.Load(ctx)
}

func (b *Browser) SetDietary(ctx context.Context, dietary string) ([]models.Recipe, error) {
	b.filter.Dietary = dietary
	return b.Load(ctx)
}

func (b *Browser) SetSortBy(ctx context.Context, sortBy string) ([]models.Recipe, error) {
	b.filter.SortBy = sortBy
	return b.Load(ctx)
}

// SetFilter replaces every filter at once and fetches once
func (b *Browser) SetFilter(ctx context.Context, filter types.RecipeFilter) ([]models.Recipe, error) {
	b.filter = filter
	return b.Load(ctx)
}

// ClearFilters resets to the unfiltered newest-first list
func (b *Browser) ClearFilters(ctx context.Context) ([]models.Recipe, error) {
	return b.SetFilter(ctx, types.RecipeFilter{})
}

// Remove deletes the recipe and drops it from the local list
func (b *Browser) Remove(ctx context.Context, id string) error {
	if err := b.client.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	kept := make([]models.Recipe, 0, len(b.recipes))
	for _, r := range b.recipes {
		if r.ID.String() != id {
			kept = append(kept, r)
		}
	}
	b.recipes = kept
	return nil
}
