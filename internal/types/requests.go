package types

import (
	"github.com/pageza/chefapp/backend/internal/models"
)

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by register and login
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// CreateRecipeRequest carries the fields accepted on recipe creation.
// Zero numeric fields count as missing.
type CreateRecipeRequest struct {
	Title        string              `json:"title" validate:"max=100"`
	Description  string              `json:"description" validate:"max=500"`
	Category     string              `json:"category" validate:"omitempty,category"`
	Difficulty   string              `json:"difficulty" validate:"omitempty,difficulty"`
	CuisineType  string              `json:"cuisineType" validate:"omitempty,cuisine"`
	Dietary      string              `json:"dietary" validate:"omitempty,dietary"`
	PrepTime     int                 `json:"prepTime" validate:"min=1"`
	CookTime     int                 `json:"cookTime" validate:"min=1"`
	Servings     int                 `json:"servings" validate:"min=1"`
	Ingredients  models.Ingredients  `json:"ingredients"`
	Instructions models.Instructions `json:"instructions"`
	Calories     *float64            `json:"calories" validate:"omitnil,min=0"`
	Rating       int                 `json:"rating" validate:"omitempty,min=1,max=5"`
	ImageURL     string              `json:"imageUrl"`
}

// UpdateRecipeRequest is a partial update; nil fields are left untouched
type UpdateRecipeRequest struct {
	Title        *string              `json:"title,omitempty" validate:"omitnil,min=1,max=100"`
	Description  *string              `json:"description,omitempty" validate:"omitnil,max=500"`
	Category     *string              `json:"category,omitempty" validate:"omitnil,category"`
	Difficulty   *string              `json:"difficulty,omitempty" validate:"omitnil,difficulty"`
	CuisineType  *string              `json:"cuisineType,omitempty" validate:"omitnil,cuisine"`
	Dietary      *string              `json:"dietary,omitempty" validate:"omitnil,dietary"`
	PrepTime     *int                 `json:"prepTime,omitempty" validate:"omitnil,min=1"`
	CookTime     *int                 `json:"cookTime,omitempty" validate:"omitnil,min=1"`
	Servings     *int                 `json:"servings,omitempty" validate:"omitnil,min=1"`
	Ingredients  *models.Ingredients  `json:"ingredients,omitempty"`
	Instructions *models.Instructions `json:"instructions,omitempty"`
	Calories     *float64             `json:"calories,omitempty" validate:"omitnil,min=0"`
	Rating       *int                 `json:"rating,omitempty" validate:"omitnil,min=1,max=5"`
	ImageURL     *string              `json:"imageUrl,omitempty"`
}

// IsEmpty reports whether no field is present
func (r UpdateRecipeRequest) IsEmpty() bool {
	return r == UpdateRecipeRequest{}
}
