package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/chefapp/backend/client"
	"github.com/pageza/chefapp/backend/internal/types"
)

func TestBrowserFilters(t *testing.T) {
	ctx := context.Background()
	c, _ := newSession(t, startServer(t))

	for _, req := range []types.CreateRecipeRequest{
		{Title: "Chocolate Cake", Category: "Dessert", PrepTime: 30, CookTime: 40, Servings: 8},
		{Title: "Fruit Salad", Description: "With choco chips", Category: "Dessert", PrepTime: 10, CookTime: 1, Servings: 4},
		{Title: "Chicken Curry", Dietary: "Non-Veg", PrepTime: 20, CookTime: 30, Servings: 4},
	} {
		req := req
		_, err := c.CreateRecipe(ctx, &req, nil)
		require.NoError(t, err)
	}

	b := client.NewBrowser(c)
	assert.Empty(t, b.Recipes())

	recipes, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, 3)

	recipes, err = b.SetCategory(ctx, "Dessert")
	require.NoError(t, err)
	assert.Len(t, recipes, 2)

	recipes, err = b.SetSearch(ctx, "choco")
	require.NoError(t, err)
	assert.Len(t, recipes, 2)

	recipes, err = b.SetSortBy(ctx, types.SortPrepTime)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Fruit Salad", recipes[0].Title)

	recipes, err = b.SetDifficulty(ctx, "Advanced")
	require.NoError(t, err)
	assert.Empty(t, recipes)

	recipes, err = b.ClearFilters(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, 3)
	assert.Equal(t, types.RecipeFilter{}, b.Filter())

	recipes, err = b.SetDietary(ctx, "Non-Veg")
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	recipes, err = b.SetCuisineType(ctx, "Other")
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	require.NoError(t, b.Remove(ctx, recipes[0].ID.String()))
	assert.Empty(t, b.Recipes())
	recipes, err = b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}
