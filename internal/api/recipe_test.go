package api_test

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tacosPayload() map[string]interface{} {
	return map[string]interface{}{"title": "Tacos", "prepTime": 10, "cookTime": 5, "servings": 2}
}

func TestCreateRecipeDefaults(t *testing.T) {
	env := setupTestEnv(t)
	token, userID := env.register(t, "Ana", "ana@example.com")

	created := env.createRecipe(t, token, tacosPayload())
	id := created["id"].(string)

	w, body := env.doJSON(t, http.MethodGet, "/api/recipes/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	recipe := body["recipe"].(map[string]interface{})
	assert.Equal(t, "Main Course", recipe["category"])
	assert.Equal(t, "Beginner", recipe["difficulty"])
	assert.Equal(t, "Other", recipe["cuisineType"])
	assert.Equal(t, "Veg", recipe["dietary"])
	assert.Equal(t, float64(4), recipe["rating"])
	assert.Equal(t, "https://via.placeholder.com/400x300?text=Recipe", recipe["imageUrl"])
	assert.Equal(t, []interface{}{}, recipe["ingredients"])
	assert.Equal(t, []interface{}{}, recipe["instructions"])
	assert.Equal(t, userID, recipe["user"])
	assert.NotContains(t, recipe, "calories")
}

func TestCreateRecipeMissingFields(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.register(t, "Ana", "ana@example.com")

	w, body := env.doJSON(t, http.MethodPost, "/api/recipes", token, map[string]interface{}{"title": "Tacos"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please provide all required fields", body["message"])

	payload := tacosPayload()
	payload["category"] = "Brunch"
	w, body = env.doJSON(t, http.MethodPost, "/api/recipes", token, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["errors"], "category")
}

func TestRecipesRequireToken(t *testing.T) {
	env := setupTestEnv(t)

	for _, path := range []string{"/api/recipes", "/api/recipes/" + uuid.NewString()} {
		w, body := env.doJSON(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, false, body["success"])
	}
}

func TestRecipeOwnershipIsolation(t *testing.T) {
	env := setupTestEnv(t)
	ownerToken, _ := env.register(t, "Owner", "owner@example.com")
	otherToken, _ := env.register(t, "Other", "other@example.com")

	id := env.createRecipe(t, ownerToken, tacosPayload())["id"].(string)
	path := "/api/recipes/" + id

	requests := []struct {
		method  string
		payload interface{}
	}{
		{http.MethodGet, nil},
		{http.MethodPut, map[string]interface{}{"rating": 1}},
		{http.MethodDelete, nil},
	}
	for _, r := range requests {
		w, body := env.doJSON(t, r.method, path, otherToken, r.payload)
		assert.Equal(t, http.StatusForbidden, w.Code, r.method)
		assert.Equal(t, "Not authorized", body["message"], r.method)
	}

	w, body := env.doJSON(t, http.MethodGet, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), body["recipe"].(map[string]interface{})["rating"])
}

func TestPartialUpdate(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.register(t, "Ana", "ana@example.com")

	payload := tacosPayload()
	payload["description"] = "Street style"
	payload["calories"] = 350
	payload["ingredients"] = []map[string]string{{"item": "tortilla", "quantity": "4", "unit": "pcs"}}
	id := env.createRecipe(t, token, payload)["id"].(string)
	path := "/api/recipes/" + id

	w, first := env.doJSON(t, http.MethodPut, path, token, map[string]interface{}{"rating": 5})
	require.Equal(t, http.StatusOK, w.Code)
	w, second := env.doJSON(t, http.MethodPut, path, token, map[string]interface{}{"rating": 5})
	require.Equal(t, http.StatusOK, w.Code)

	a := first["recipe"].(map[string]interface{})
	b := second["recipe"].(map[string]interface{})
	assert.Equal(t, float64(5), a["rating"])
	assert.Equal(t, "Tacos", a["title"])
	assert.Equal(t, "Street style", a["description"])
	assert.Equal(t, float64(350), a["calories"])
	assert.Len(t, a["ingredients"], 1)
	delete(a, "updatedAt")
	delete(b, "updatedAt")
	assert.Equal(t, a, b)

	w, body := env.doJSON(t, http.MethodPut, path, token, map[string]interface{}{"calories": 0, "description": ""})
	require.Equal(t, http.StatusOK, w.Code)
	cleared := body["recipe"].(map[string]interface{})
	assert.Equal(t, float64(0), cleared["calories"])
	assert.Equal(t, "", cleared["description"])
	assert.Equal(t, float64(5), cleared["rating"])
}

func TestListRecipesFilters(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.register(t, "Ana", "ana@example.com")
	otherToken, _ := env.register(t, "Ben", "ben@example.com")

	env.createRecipe(t, token, map[string]interface{}{"title": "Chocolate Cake", "category": "Dessert", "prepTime": 30, "cookTime": 40, "servings": 8})
	env.createRecipe(t, otherToken, map[string]interface{}{"title": "Fruit Salad", "description": "With choco chips", "category": "Dessert", "prepTime": 10, "cookTime": 1, "servings": 4})
	env.createRecipe(t, token, map[string]interface{}{"title": "Chicken Curry", "category": "Main Course", "dietary": "Non-Veg", "prepTime": 20, "cookTime": 30, "servings": 4})

	w, body := env.doJSON(t, http.MethodGet, "/api/recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["count"])

	w, body = env.doJSON(t, http.MethodGet, "/api/recipes?category=Dessert", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["count"])
	for _, r := range body["recipes"].([]interface{}) {
		assert.Equal(t, "Dessert", r.(map[string]interface{})["category"])
	}

	w, body = env.doJSON(t, http.MethodGet, "/api/recipes?search=CHOCO", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["count"])

	w, body = env.doJSON(t, http.MethodGet, "/api/recipes?dietary=Non-Veg&sortBy=title", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	recipes := body["recipes"].([]interface{})
	require.Len(t, recipes, 1)
	assert.Equal(t, "Chicken Curry", recipes[0].(map[string]interface{})["title"])

	w, body = env.doJSON(t, http.MethodGet, "/api/recipes?category=Bread", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, []interface{}{}, body["recipes"])
}

func TestDeleteRecipe(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.register(t, "Ana", "ana@example.com")
	id := env.createRecipe(t, token, tacosPayload())["id"].(string)

	w, body := env.doJSON(t, http.MethodDelete, "/api/recipes/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Recipe deleted", body["message"])

	w, body = env.doJSON(t, http.MethodDelete, "/api/recipes/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Recipe not found", body["message"])

	w, _ = env.doJSON(t, http.MethodDelete, "/api/recipes/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = env.doJSON(t, http.MethodGet, "/api/recipes/not-an-id", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRecipeMultipart(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.register(t, "Ana", "ana@example.com")

	fields := map[string]string{
		"title":        "Pancakes",
		"prepTime":     "5",
		"cookTime":     "10",
		"servings":     "4",
		"calories":     "",
		"category":     "Dessert",
		"ingredients":  `[{"item":"flour","quantity":"200","unit":"g"}]`,
		"instructions": `[{"stepNumber":1,"description":"Mix"},{"stepNumber":2,"description":"Fry"}]`,
	}
	w, body := env.doMultipart(t, http.MethodPost, "/api/recipes", token, fields,
		&filePart{field: "recipeImage", filename: "pancakes.png", contentType: "image/png", data: pngBytes})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	recipe := body["recipe"].(map[string]interface{})
	assert.Equal(t, float64(5), recipe["prepTime"])
	assert.NotContains(t, recipe, "calories")
	assert.Len(t, recipe["ingredients"], 1)
	assert.Len(t, recipe["instructions"], 2)
	imageURL := recipe["imageUrl"].(string)
	assert.True(t, strings.HasPrefix(imageURL, "/uploads/recipes/"), imageURL)
	_, err := os.Stat(filepath.Join(env.uploadDir, "recipes", filepath.Base(imageURL)))
	assert.NoError(t, err)

	w, body = env.doMultipart(t, http.MethodPut, "/api/recipes/"+recipe["id"].(string), token,
		map[string]string{"rating": "5", "prepTime": ""}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := body["recipe"].(map[string]interface{})
	assert.Equal(t, float64(5), updated["rating"])
	assert.Equal(t, float64(5), updated["prepTime"])
	assert.Equal(t, imageURL, updated["imageUrl"])

	w, body = env.doMultipart(t, http.MethodPost, "/api/recipes", token,
		map[string]string{"title": "Bad", "prepTime": "ten", "cookTime": "1", "servings": "1"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["errors"], "prepTime")
}

func TestNonImageUploadRejectedBeforeWrite(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.register(t, "Ana", "ana@example.com")

	fields := map[string]string{"title": "Tacos", "prepTime": "10", "cookTime": "5", "servings": "2"}
	w, body := env.doMultipart(t, http.MethodPost, "/api/recipes", token, fields,
		&filePart{field: "recipeImage", filename: "notes.txt", contentType: "text/plain", data: []byte("hello")})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Only image files are allowed", body["message"])

	entries, err := os.ReadDir(filepath.Join(env.uploadDir, "recipes"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	w, body = env.doJSON(t, http.MethodGet, "/api/recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["count"])
}

func TestFailedCreateRemovesUpload(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.register(t, "Ana", "ana@example.com")

	w, _ := env.doMultipart(t, http.MethodPost, "/api/recipes", token, map[string]string{"title": "No times"},
		&filePart{field: "recipeImage", filename: "dish.png", contentType: "image/png", data: pngBytes})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	entries, err := os.ReadDir(filepath.Join(env.uploadDir, "recipes"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
