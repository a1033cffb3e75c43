package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/chefapp/backend/internal/middleware"
	"github.com/pageza/chefapp/backend/internal/service"
	"github.com/pageza/chefapp/backend/internal/storage"
	"github.com/pageza/chefapp/backend/internal/types"
)

// AuthHandler serves registration, login and the caller's profile
type AuthHandler struct {
	authService    service.IAuthService
	profileService service.IProfileService
	store          storage.Store
	maxUpload      int64
}

func NewAuthHandler(authService service.IAuthService, profileService service.IProfileService, store storage.Store, maxUpload int64) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		profileService: profileService,
		store:          store,
		maxUpload:      maxUpload,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		protected := auth.Group("", middleware.AuthMiddleware(h.authService))
		protected.GET("/profile", h.GetProfile)
		protected.PUT("/profile",
			middleware.Upload(h.store, middleware.ProfileImageField, storage.ProfilesDir, h.maxUpload),
			h.UpdateProfile)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	user, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	req, err := bindProfileUpdate(c)
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), userID, req, middleware.UploadedFile(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Profile()})
}
