package types

// Sort keys accepted by the recipe listing
const (
	SortNewest   = "newest"
	SortTitle    = "title"
	SortPrepTime = "prepTime"
	SortRating   = "rating"
)

// RecipeFilter holds the listing query. Empty fields do not filter.
type RecipeFilter struct {
	Search      string `form:"search" json:"search,omitempty"`
	Category    string `form:"category" json:"category,omitempty"`
	Difficulty  string `form:"difficulty" json:"difficulty,omitempty"`
	CuisineType string `form:"cuisineType" json:"cuisineType,omitempty"`
	Dietary     string `form:"dietary" json:"dietary,omitempty"`
	SortBy      string `form:"sortBy" json:"sortBy,omitempty"`
}
