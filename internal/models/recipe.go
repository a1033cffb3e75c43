package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultImageURL is stored when a recipe is created without an image
const DefaultImageURL = "https://via.placeholder.com/400x300?text=Recipe"

// Field limits
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MinRating            = 1
	MaxRating            = 5
	DefaultRating        = 4
)

// Enum values and defaults
var (
	Categories   = []string{"Appetizer", "Main Course", "Dessert", "Beverage", "Snack", "Salad", "Soup", "Bread"}
	Difficulties = []string{"Beginner", "Intermediate", "Advanced"}
	Cuisines     = []string{"Italian", "Chinese", "Indian", "Mexican", "American", "Mediterranean", "Asian", "Other"}
	Dietaries    = []string{"Veg", "Non-Veg"}
)

const (
	DefaultCategory   = "Main Course"
	DefaultDifficulty = "Beginner"
	DefaultCuisine    = "Other"
	DefaultDietary    = "Veg"
)

// OneOf reports whether v is one of values
func OneOf(v string, values []string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// Ingredient is a single line of a recipe's ingredient list
type Ingredient struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// Instruction is a numbered preparation step
type Instruction struct {
	StepNumber  int    `json:"stepNumber"`
	Description string `json:"description"`
}

// Ingredients is stored as a JSON column
type Ingredients []Ingredient

// Value implements the driver.Valuer interface
func (a Ingredients) Value() (driver.Value, error) {
	return jsonValue(a, len(a))
}

// Scan implements the sql.Scanner interface
func (a *Ingredients) Scan(value interface{}) error {
	*a = Ingredients{}
	return jsonScan(value, a)
}

// Instructions is stored as a JSON column
type Instructions []Instruction

// Value implements the driver.Valuer interface
func (a Instructions) Value() (driver.Value, error) {
	return jsonValue(a, len(a))
}

// Scan implements the sql.Scanner interface
func (a *Instructions) Scan(value interface{}) error {
	*a = Instructions{}
	return jsonScan(value, a)
}

func jsonValue(v interface{}, n int) (driver.Value, error) {
	if n == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(value interface{}, dest interface{}) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dest)
}

// Recipe is a user-owned recipe document
type Recipe struct {
	ID           uuid.UUID    `gorm:"type:varchar(36);primarykey" json:"id"`
	Title        string       `gorm:"size:100;not null" json:"title"`
	Description  string       `gorm:"size:500" json:"description"`
	Category     string       `gorm:"size:32;not null;index" json:"category"`
	Difficulty   string       `gorm:"size:32;not null;index" json:"difficulty"`
	CuisineType  string       `gorm:"size:32;not null;index" json:"cuisineType"`
	Dietary      string       `gorm:"size:16;not null;index" json:"dietary"`
	PrepTime     int          `gorm:"not null" json:"prepTime"`
	CookTime     int          `gorm:"not null" json:"cookTime"`
	Servings     int          `gorm:"not null" json:"servings"`
	Ingredients  Ingredients  `gorm:"type:text;not null" json:"ingredients"`
	Instructions Instructions `gorm:"type:text;not null" json:"instructions"`
	Calories     *float64     `json:"calories,omitempty"`
	Rating       int          `gorm:"not null" json:"rating"`
	ImageURL     string       `gorm:"size:512" json:"imageUrl"`
	UserID       uuid.UUID    `gorm:"type:varchar(36);not null;index" json:"user"`
	CreatedAt    time.Time    `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// BeforeCreate assigns an id and the documented defaults
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.ApplyDefaults()
	return nil
}

// ApplyDefaults fills unset enum, rating, image and list fields
func (r *Recipe) ApplyDefaults() {
	if r.Category == "" {
		r.Category = DefaultCategory
	}
	if r.Difficulty == "" {
		r.Difficulty = DefaultDifficulty
	}
	if r.CuisineType == "" {
		r.CuisineType = DefaultCuisine
	}
	if r.Dietary == "" {
		r.Dietary = DefaultDietary
	}
	if r.Rating == 0 {
		r.Rating = DefaultRating
	}
	if r.ImageURL == "" {
		r.ImageURL = DefaultImageURL
	}
	if r.Ingredients == nil {
		r.Ingredients = Ingredients{}
	}
	if r.Instructions == nil {
		r.Instructions = Instructions{}
	}
}

// OwnedBy reports whether userID owns the recipe
func (r *Recipe) OwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

// All lists every model for auto-migration
func All() []interface{} {
	return []interface{}{&User{}, &Recipe{}}
}
