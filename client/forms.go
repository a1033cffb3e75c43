package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pageza/chefapp/backend/internal/types"
)

// Upload limits checked before anything is sent
const (
	MaxRecipeImageBytes  = 5 << 20
	MaxProfileImageBytes = 3 << 20
)

// Multipart field names
const (
	RecipeImageField  = "recipeImage"
	ProfileImageField = "profileImage"
)

// Client-side form errors, worded for display
var (
	ErrNotImage        = errors.New("Please select a valid image file")
	ErrMissingRequired = errors.New("Please fill in required fields: Title, Prep Time, Cook Time")
)

// Image is a file attached to a recipe or profile update
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// LoadImage reads path and sniffs its content type
func LoadImage(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Image{
		Name:        filepath.Base(path),
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}

func (i *Image) check(max int) error {
	if !strings.HasPrefix(i.ContentType, "image/") {
		return ErrNotImage
	}
	if len(i.Data) > max {
		return fmt.Errorf("Image size should be %dMB or less", max>>20)
	}
	return nil
}

func (i *Image) writePart(mw *multipart.Writer, field string) error {
	if i == nil {
		return nil
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, i.Name))
	h.Set("Content-Type", i.ContentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(i.Data)
	return err
}

// CheckRequired reports the fields a new recipe cannot be saved without
func CheckRequired(req *types.CreateRecipeRequest) error {
	if strings.TrimSpace(req.Title) == "" || req.PrepTime == 0 || req.CookTime == 0 {
		return ErrMissingRequired
	}
	return nil
}

// Sanitize trims s and strips angle brackets
func Sanitize(s string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(strings.TrimSpace(s))
}

func setString(v url.Values, key string, s *string) {
	if s != nil {
		v.Set(key, *s)
	}
}

func setInt(v url.Values, key string, n *int) {
	if n != nil {
		v.Set(key, strconv.Itoa(*n))
	}
}

func setJSON(v url.Values, key string, x interface{}) error {
	raw, err := json.Marshal(x)
	if err != nil {
		return err
	}
	v.Set(key, string(raw))
	return nil
}

// createFields encodes a create request the way the server's form binding
// reads it: numbers as decimal strings and lists as JSON strings.
func createFields(req *types.CreateRecipeRequest) (url.Values, error) {
	v := url.Values{}
	v.Set("title", req.Title)
	v.Set("description", req.Description)
	for key, s := range map[string]string{
		"category":    req.Category,
		"difficulty":  req.Difficulty,
		"cuisineType": req.CuisineType,
		"dietary":     req.Dietary,
		"imageUrl":    req.ImageURL,
	} {
		if s != "" {
			v.Set(key, s)
		}
	}
	v.Set("prepTime", strconv.Itoa(req.PrepTime))
	v.Set("cookTime", strconv.Itoa(req.CookTime))
	v.Set("servings", strconv.Itoa(req.Servings))
	if req.Rating != 0 {
		v.Set("rating", strconv.Itoa(req.Rating))
	}
	if req.Calories != nil {
		v.Set("calories", strconv.FormatFloat(*req.Calories, 'f', -1, 64))
	}
	if req.Ingredients != nil {
		if err := setJSON(v, "ingredients", req.Ingredients); err != nil {
			return nil, err
		}
	}
	if req.Instructions != nil {
		if err := setJSON(v, "instructions", req.Instructions); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func updateFields(req *types.UpdateRecipeRequest) (url.Values, error) {
	v := url.Values{}
	setString(v, "title", req.Title)
	setString(v, "description", req.Description)
	setString(v, "category", req.Category)
	setString(v, "difficulty", req.Difficulty)
	setString(v, "cuisineType", req.CuisineType)
	setString(v, "dietary", req.Dietary)
	setString(v, "imageUrl", req.ImageURL)
	setInt(v, "prepTime", req.PrepTime)
	setInt(v, "cookTime", req.CookTime)
	setInt(v, "servings", req.Servings)
	setInt(v, "rating", req.Rating)
	if req.Calories != nil {
		v.Set("calories", strconv.FormatFloat(*req.Calories, 'f', -1, 64))
	}
	if req.Ingredients != nil {
		if err := setJSON(v, "ingredients", *req.Ingredients); err != nil {
			return nil, err
		}
	}
	if req.Instructions != nil {
		if err := setJSON(v, "instructions", *req.Instructions); err != nil {
			return nil, err
		}
	}
	return v, nil
}
