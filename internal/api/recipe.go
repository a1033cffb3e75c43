package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/chefapp/backend/internal/apperr"
	"github.com/pageza/chefapp/backend/internal/middleware"
	"github.com/pageza/chefapp/backend/internal/service"
	"github.com/pageza/chefapp/backend/internal/storage"
	"github.com/pageza/chefapp/backend/internal/types"
)

// RecipeHandler serves the recipe collection. Every route needs a token.
type RecipeHandler struct {
	recipeService service.IRecipeService
	validator     middleware.TokenValidator
	store         storage.Store
	maxUpload     int64
}

func NewRecipeHandler(recipeService service.IRecipeService, validator middleware.TokenValidator, store storage.Store, maxUpload int64) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		validator:     validator,
		store:         store,
		maxUpload:     maxUpload,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	upload := middleware.Upload(h.store, middleware.RecipeImageField, storage.RecipesDir, h.maxUpload)

	recipes := router.Group("/recipes", middleware.AuthMiddleware(h.validator))
	{
		recipes.POST("", upload, h.CreateRecipe)
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", upload, h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	req, err := bindCreateRecipe(c)
	if err != nil {
		c.Error(err)
		return
	}
	if uploaded := middleware.UploadedFile(c); uploaded != "" {
		req.ImageURL = uploaded
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "recipe": recipe})
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var filter types.RecipeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(apperr.Validation("Invalid query"))
		return
	}

	recipes, err := h.recipeService.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(recipes),
		"recipes": recipes,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	req, err := bindUpdateRecipe(c)
	if err != nil {
		c.Error(err)
		return
	}
	if uploaded := middleware.UploadedFile(c); uploaded != "" {
		req.ImageURL = &uploaded
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Recipe deleted"})
}
