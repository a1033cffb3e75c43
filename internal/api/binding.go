package api

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pageza/chefapp/backend/internal/apperr"
	"github.com/pageza/chefapp/backend/internal/models"
	"github.com/pageza/chefapp/backend/internal/types"
)

// MsgInvalidBody is returned for bodies that cannot be decoded
const MsgInvalidBody = "Invalid request body"

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// bindJSON decodes the body into dst; an empty body leaves dst untouched
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperr.Validation(MsgInvalidBody)
	}
	return nil
}

// form reads typed values from a parsed multipart form. The first
// conversion failure is kept in err.
type form struct {
	c   *gin.Context
	err *apperr.Error
}

func (f *form) fail(field, msg string) {
	if f.err == nil {
		f.err = apperr.Validation(msg)
	}
	f.err.WithDetail(field, msg)
}

// str returns the field and whether it was sent at all
func (f *form) str(field string) (string, bool) {
	return f.c.GetPostForm(field)
}

func (f *form) strPtr(field string) *string {
	v, ok := f.str(field)
	if !ok {
		return nil
	}
	return &v
}

// intPtr treats a missing or empty field as absent
func (f *form) intPtr(field string) *int {
	v, ok := f.str(field)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.fail(field, field+" must be a whole number")
		return nil
	}
	return &n
}

func (f *form) floatPtr(field string) *float64 {
	v, ok := f.str(field)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		f.fail(field, field+" must be a number")
		return nil
	}
	return &n
}

// jsonField decodes a JSON-encoded form value into dst
func (f *form) jsonField(field string, dst interface{}) bool {
	v, ok := f.str(field)
	if !ok || strings.TrimSpace(v) == "" {
		return false
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		f.fail(field, field+" must be a JSON array")
		return false
	}
	return true
}

func (f *form) error() error {
	if f.err == nil {
		return nil
	}
	return f.err
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func bindCreateRecipe(c *gin.Context) (*types.CreateRecipeRequest, error) {
	req := &types.CreateRecipeRequest{}
	if !isMultipart(c) {
		if err := bindJSON(c, req); err != nil {
			return nil, err
		}
		return req, nil
	}

	f := &form{c: c}
	req.Title = deref(f.strPtr("title"))
	req.Description = deref(f.strPtr("description"))
	req.Category = deref(f.strPtr("category"))
	req.Difficulty = deref(f.strPtr("difficulty"))
	req.CuisineType = deref(f.strPtr("cuisineType"))
	req.Dietary = deref(f.strPtr("dietary"))
	req.ImageURL = deref(f.strPtr("imageUrl"))
	req.PrepTime = deref(f.intPtr("prepTime"))
	req.CookTime = deref(f.intPtr("cookTime"))
	req.Servings = deref(f.intPtr("servings"))
	req.Rating = deref(f.intPtr("rating"))
	req.Calories = f.floatPtr("calories")
	f.jsonField("ingredients", &req.Ingredients)
	f.jsonField("instructions", &req.Instructions)
	if err := f.error(); err != nil {
		return nil, err
	}
	return req, nil
}

func bindUpdateRecipe(c *gin.Context) (*types.UpdateRecipeRequest, error) {
	req := &types.UpdateRecipeRequest{}
	if !isMultipart(c) {
		if err := bindJSON(c, req); err != nil {
			return nil, err
		}
		return req, nil
	}

	f := &form{c: c}
	req.Title = f.strPtr("title")
	req.Description = f.strPtr("description")
	req.Category = nonEmpty(f.strPtr("category"))
	req.Difficulty = nonEmpty(f.strPtr("difficulty"))
	req.CuisineType = nonEmpty(f.strPtr("cuisineType"))
	req.Dietary = nonEmpty(f.strPtr("dietary"))
	req.ImageURL = nonEmpty(f.strPtr("imageUrl"))
	req.PrepTime = f.intPtr("prepTime")
	req.CookTime = f.intPtr("cookTime")
	req.Servings = f.intPtr("servings")
	req.Rating = f.intPtr("rating")
	req.Calories = f.floatPtr("calories")

	var ingredients models.Ingredients
	if f.jsonField("ingredients", &ingredients) {
		req.Ingredients = &ingredients
	}
	var instructions models.Instructions
	if f.jsonField("instructions", &instructions) {
		req.Instructions = &instructions
	}
	if err := f.error(); err != nil {
		return nil, err
	}
	return req, nil
}

// nonEmpty drops empty select values a form sends for "unchanged"
func nonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

func bindProfileUpdate(c *gin.Context) (*types.UpdateProfileRequest, error) {
	req := &types.UpdateProfileRequest{}
	if !isMultipart(c) {
		if err := bindJSON(c, req); err != nil {
			return nil, err
		}
		return req, nil
	}

	f := &form{c: c}
	req.Name = f.strPtr("name")
	req.Bio = f.strPtr("bio")
	req.ProfilePicture = nonEmpty(f.strPtr("profilePicture"))
	return req, nil
}
