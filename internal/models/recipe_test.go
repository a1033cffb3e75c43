package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func TestRecipeDefaultsOnCreate(t *testing.T) {
	db := setupTestDB(t)
	owner := &User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(owner).Error)
	assert.NotEqual(t, uuid.Nil, owner.ID)

	recipe := &Recipe{Title: "Tacos", PrepTime: 10, CookTime: 5, Servings: 2, UserID: owner.ID}
	require.NoError(t, db.Create(recipe).Error)

	var stored Recipe
	require.NoError(t, db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, DefaultCategory, stored.Category)
	assert.Equal(t, DefaultDifficulty, stored.Difficulty)
	assert.Equal(t, DefaultCuisine, stored.CuisineType)
	assert.Equal(t, DefaultDietary, stored.Dietary)
	assert.Equal(t, DefaultRating, stored.Rating)
	assert.Equal(t, DefaultImageURL, stored.ImageURL)
	assert.NotNil(t, stored.Ingredients)
	assert.Empty(t, stored.Ingredients)
	assert.Empty(t, stored.Instructions)
	assert.Nil(t, stored.Calories)
	assert.True(t, stored.OwnedBy(owner.ID))
}

func TestRecipeListsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	calories := 0.0
	recipe := &Recipe{
		Title: "Pancakes", PrepTime: 5, CookTime: 10, Servings: 4, UserID: uuid.New(),
		Ingredients: Ingredients{
			{Item: "flour", Quantity: "200", Unit: "g"},
			{Item: "milk", Quantity: "300", Unit: "ml"},
		},
		Instructions: Instructions{
			{StepNumber: 1, Description: "Whisk"},
			{StepNumber: 2, Description: "Fry"},
		},
		Calories: &calories,
	}
	require.NoError(t, db.Create(recipe).Error)

	var stored Recipe
	require.NoError(t, db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, recipe.Ingredients, stored.Ingredients)
	assert.Equal(t, recipe.Instructions, stored.Instructions)
	require.NotNil(t, stored.Calories)
	assert.Equal(t, 0.0, *stored.Calories)
}

func TestUniqueEmail(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&User{Name: "A", Email: "dup@example.com", PasswordHash: "x"}).Error)
	assert.Error(t, db.Create(&User{Name: "B", Email: "dup@example.com", PasswordHash: "y"}).Error)
}

func TestUserViews(t *testing.T) {
	u := &User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", Bio: "cook", ProfilePicture: "/uploads/profiles/a.png"}
	assert.Equal(t, PublicUser{ID: u.ID, Name: "Ana", Email: "ana@example.com"}, u.Public())
	assert.Equal(t, "cook", u.Profile().Bio)
	assert.Equal(t, "/uploads/profiles/a.png", u.Profile().ProfilePicture)
}

func TestOneOf(t *testing.T) {
	assert.True(t, OneOf("Dessert", Categories))
	assert.False(t, OneOf("dessert", Categories))
	assert.True(t, OneOf("Non-Veg", Dietaries))
}
