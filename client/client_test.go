package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/chefapp/backend/client"
	"github.com/pageza/chefapp/backend/config"
	"github.com/pageza/chefapp/backend/internal/models"
	"github.com/pageza/chefapp/backend/internal/server"
	"github.com/pageza/chefapp/backend/internal/testhelpers"
	"github.com/pageza/chefapp/backend/internal/types"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

// startServer runs the full API against an in-memory database and returns
// its API root.
func startServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDatabase(t)
	srv, err := server.New(&config.Config{
		Env:            config.Test,
		JWTSecret:      "client-test-secret",
		UploadDir:      t.TempDir(),
		UploadBackend:  config.UploadBackendLocal,
		MaxUploadBytes: config.DefaultMaxUpload,
	}, db)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL + "/api"
}

func newSession(t *testing.T, baseURL string) (*client.Client, *client.Session) {
	t.Helper()
	c := client.New(baseURL, client.NewMemoryTokenStore())
	s := client.NewSession(c)
	_, err := s.Register(context.Background(), &types.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secret123", ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	return c, s
}

func TestHealth(t *testing.T) {
	c := client.New(startServer(t), nil)
	status, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Server is running", status)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	baseURL := startServer(t)
	tokens := client.NewFileTokenStore(filepath.Join(t.TempDir(), "chefapp", "token"))
	session := client.NewSession(client.New(baseURL, tokens))

	user, err := session.Register(ctx, &types.RegisterRequest{
		Name: "Ana", Email: "Ana@Example.com", Password: "secret123", ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	assert.True(t, session.LoggedIn())
	assert.Equal(t, "ana@example.com", user.Email)

	info, err := os.Stat(tokens.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	restored := client.NewSession(client.New(baseURL, tokens))
	user, err = restored.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ana", user.Name)

	require.NoError(t, restored.Logout())
	assert.False(t, restored.LoggedIn())
	token, err := tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	user, err = session.Login(ctx, "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
}

func TestRestoreDropsRejectedToken(t *testing.T) {
	tokens := client.NewMemoryTokenStore()
	require.NoError(t, tokens.Save("not-a-token"))
	session := client.NewSession(client.New(startServer(t), tokens))

	user, err := session.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	token, _ := tokens.Load()
	assert.Empty(t, token)
}

func TestLoginFailure(t *testing.T) {
	ctx := context.Background()
	baseURL := startServer(t)
	newSession(t, baseURL)

	session := client.NewSession(client.New(baseURL, nil))
	_, wrongPassword := session.Login(ctx, "ana@example.com", "nope")
	_, unknownEmail := session.Login(ctx, "nobody@example.com", "secret123")

	for _, err := range []error{wrongPassword, unknownEmail} {
		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "Invalid credentials", apiErr.Message)
	}
	assert.False(t, session.LoggedIn())
}

func TestRecipeCRUD(t *testing.T) {
	ctx := context.Background()
	c, _ := newSession(t, startServer(t))

	created, err := c.CreateRecipe(ctx, &types.CreateRecipeRequest{
		Title: "Tacos", PrepTime: 10, CookTime: 5, Servings: 2,
		Ingredients: models.Ingredients{{Item: "tortilla", Quantity: "4", Unit: "pcs"}},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCategory, created.Category)
	assert.Equal(t, models.DefaultRating, created.Rating)

	id := created.ID.String()
	rating := 5
	updated, err := c.UpdateRecipe(ctx, id, &types.UpdateRecipeRequest{Rating: &rating}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Tacos", updated.Title)
	assert.Len(t, updated.Ingredients, 1)

	got, err := c.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)

	require.NoError(t, c.DeleteRecipe(ctx, id))
	_, err = c.GetRecipe(ctx, id)
	assert.Equal(t, http.StatusNotFound, client.StatusOf(err))
}

func TestCreateRecipeValidationDetails(t *testing.T) {
	c, _ := newSession(t, startServer(t))

	_, err := c.CreateRecipe(context.Background(), &types.CreateRecipeRequest{
		Title: "Tacos", Category: "Brunch", PrepTime: 10, CookTime: 5, Servings: 2,
	}, nil)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Details, "category")
}

func TestRecipesRequireLogin(t *testing.T) {
	c := client.New(startServer(t), nil)
	_, err := c.ListRecipes(context.Background(), types.RecipeFilter{})
	assert.Equal(t, http.StatusUnauthorized, client.StatusOf(err))
}

func TestCreateRecipeWithImage(t *testing.T) {
	ctx := context.Background()
	c, _ := newSession(t, startServer(t))

	path := filepath.Join(t.TempDir(), "pancakes.png")
	require.NoError(t, os.WriteFile(path, pngBytes, 0o600))
	image, err := client.LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", image.ContentType)

	calories := 0.0
	recipe, err := c.CreateRecipe(ctx, &types.CreateRecipeRequest{
		Title: "Pancakes", PrepTime: 5, CookTime: 10, Servings: 4, Calories: &calories,
		Instructions: models.Instructions{{StepNumber: 1, Description: "Mix"}},
	}, image)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(recipe.ImageURL, "/uploads/recipes/"), recipe.ImageURL)
	require.NotNil(t, recipe.Calories)
	assert.Equal(t, 0.0, *recipe.Calories)
	assert.Len(t, recipe.Instructions, 1)

	title := "Fluffy Pancakes"
	updated, err := c.UpdateRecipe(ctx, recipe.ID.String(), &types.UpdateRecipeRequest{Title: &title}, image)
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.NotEqual(t, recipe.ImageURL, updated.ImageURL)
}

func TestImagePrecheck(t *testing.T) {
	ctx := context.Background()
	// nothing listens here; a precheck failure must not reach the network
	c := client.New("http://127.0.0.1:1/api", nil)
	req := &types.CreateRecipeRequest{Title: "Tacos", PrepTime: 1, CookTime: 1, Servings: 1}

	big := &client.Image{Name: "big.png", ContentType: "image/png", Data: make([]byte, client.MaxRecipeImageBytes+1)}
	_, err := c.CreateRecipe(ctx, req, big)
	require.Error(t, err)
	assert.Equal(t, "Image size should be 5MB or less", err.Error())

	text := &client.Image{Name: "notes.txt", ContentType: "text/plain", Data: []byte("hi")}
	_, err = c.CreateRecipe(ctx, req, text)
	assert.ErrorIs(t, err, client.ErrNotImage)

	profile := &client.Image{Name: "me.png", ContentType: "image/png", Data: make([]byte, client.MaxProfileImageBytes+1)}
	_, err = c.UpdateProfile(ctx, &types.UpdateProfileRequest{}, profile)
	require.Error(t, err)
	assert.Equal(t, "Image size should be 3MB or less", err.Error())
}

func TestSessionUpdateProfile(t *testing.T) {
	ctx := context.Background()
	_, session := newSession(t, startServer(t))

	bio := "Home cook"
	user, err := session.UpdateProfile(ctx, &types.UpdateProfileRequest{Bio: &bio},
		&client.Image{Name: "me.png", ContentType: "image/png", Data: pngBytes})
	require.NoError(t, err)
	assert.Equal(t, bio, user.Bio)
	assert.True(t, strings.HasPrefix(user.ProfilePicture, "/uploads/profiles/"), user.ProfilePicture)
	assert.Equal(t, user, session.User())
}

func TestCheckRequiredAndSanitize(t *testing.T) {
	assert.ErrorIs(t, client.CheckRequired(&types.CreateRecipeRequest{Title: " ", PrepTime: 1, CookTime: 1}), client.ErrMissingRequired)
	assert.ErrorIs(t, client.CheckRequired(&types.CreateRecipeRequest{Title: "Soup", CookTime: 1}), client.ErrMissingRequired)
	assert.NoError(t, client.CheckRequired(&types.CreateRecipeRequest{Title: "Soup", PrepTime: 1, CookTime: 1}))
	assert.Equal(t, "bold", client.Sanitize("  <bold> "))
}
