package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/chefapp/backend/internal/models"
	"github.com/pageza/chefapp/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResult, error)
	Login(ctx context.Context, email, password string) (*types.AuthResult, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(userID uuid.UUID) (string, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest, uploadedPath string) (*models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
	List(ctx context.Context, filter types.RecipeFilter) ([]models.Recipe, error)
	Get(ctx context.Context, id string, callerID uuid.UUID) (*models.Recipe, error)
	Update(ctx context.Context, id string, callerID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error)
	Delete(ctx context.Context, id string, callerID uuid.UUID) error
}
