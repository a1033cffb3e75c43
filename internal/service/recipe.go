package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/chefapp/backend/internal/apperr"
	"github.com/pageza/chefapp/backend/internal/logging"
	"github.com/pageza/chefapp/backend/internal/models"
	"github.com/pageza/chefapp/backend/internal/types"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Client-facing messages
const (
	MsgRequiredFields = "Please provide all required fields"
	MsgRecipeNotFound = "Recipe not found"
	MsgNotAuthorized  = "Not authorized"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// RecipeService handles recipe operations
type RecipeService struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Ensure RecipeService implements IRecipeService
var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{
		db:  db,
		log: logging.NewServiceLogger("recipe"),
	}
}

// Create stores a new recipe owned by ownerID
func (s *RecipeService) Create(ctx context.Context, ownerID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" || req.PrepTime == 0 || req.CookTime == 0 || req.Servings == 0 {
		return nil, apperr.Validation(MsgRequiredFields)
	}
	if err := validateStruct(req, "Recipe validation failed"); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		CuisineType:  req.CuisineType,
		Dietary:      req.Dietary,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Calories:     req.Calories,
		Rating:       req.Rating,
		ImageURL:     req.ImageURL,
		UserID:       ownerID,
	}
	recipe.ApplyDefaults()

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	s.log.Debug().Str(logging.USER, ownerID.String()).Str("recipe_id", recipe.ID.String()).Msg("recipe created")
	return recipe, nil
}

// List returns every recipe matching filter, across all owners
func (s *RecipeService) List(ctx context.Context, filter types.RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, like, like)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.CuisineType != "" {
		query = query.Where("cuisine_type = ?", filter.CuisineType)
	}
	if filter.Dietary != "" {
		query = query.Where("dietary = ?", filter.Dietary)
	}

	recipes := []models.Recipe{}
	if err := query.Order(sortOrder(filter.SortBy)).Find(&recipes).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return recipes, nil
}

func sortOrder(sortBy string) string {
	switch sortBy {
	case types.SortTitle:
		return "title ASC, created_at DESC"
	case types.SortPrepTime:
		return "prep_time ASC, created_at DESC"
	case types.SortRating:
		return "rating DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

// Get loads a recipe the caller owns
func (s *RecipeService) Get(ctx context.Context, id string, callerID uuid.UUID) (*models.Recipe, error) {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound(MsgRecipeNotFound)
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(MsgRecipeNotFound)
		}
		return nil, apperr.Internal("Server error", err)
	}

	if !recipe.OwnedBy(callerID) {
		return nil, apperr.Forbidden(MsgNotAuthorized)
	}
	return &recipe, nil
}

// Update applies the present fields of req to a recipe the caller owns
func (s *RecipeService) Update(ctx context.Context, id string, callerID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		req.Description = &description
	}
	if err := validateStruct(req, "Recipe validation failed"); err != nil {
		return nil, err
	}

	applyRecipeUpdate(recipe, req)
	recipe.UpdatedAt = time.Now()

	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return recipe, nil
}

func applyRecipeUpdate(r *models.Recipe, req *types.UpdateRecipeRequest) {
	if req.Title != nil {
		r.Title = *req.Title
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	if req.Category != nil {
		r.Category = *req.Category
	}
	if req.Difficulty != nil {
		r.Difficulty = *req.Difficulty
	}
	if req.CuisineType != nil {
		r.CuisineType = *req.CuisineType
	}
	if req.Dietary != nil {
		r.Dietary = *req.Dietary
	}
	if req.PrepTime != nil {
		r.PrepTime = *req.PrepTime
	}
	if req.CookTime != nil {
		r.CookTime = *req.CookTime
	}
	if req.Servings != nil {
		r.Servings = *req.Servings
	}
	if req.Ingredients != nil {
		r.Ingredients = *req.Ingredients
	}
	if req.Instructions != nil {
		r.Instructions = *req.Instructions
	}
	if req.Calories != nil {
		calories := *req.Calories
		r.Calories = &calories
	}
	if req.Rating != nil {
		r.Rating = *req.Rating
	}
	if req.ImageURL != nil {
		r.ImageURL = *req.ImageURL
	}
	r.ApplyDefaults()
}

// Delete removes a recipe the caller owns
func (s *RecipeService) Delete(ctx context.Context, id string, callerID uuid.UUID) error {
	recipe, err := s.Get(ctx, id, callerID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", recipe.ID).Error; err != nil {
		return apperr.Internal("Server error", err)
	}
	s.log.Debug().Str(logging.USER, callerID.String()).Str("recipe_id", recipe.ID.String()).Msg("recipe deleted")
	return nil
}
