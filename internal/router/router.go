package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/chefapp/backend/internal/api"
	"github.com/pageza/chefapp/backend/internal/middleware"
	"github.com/pageza/chefapp/backend/internal/storage"
)

// Options carries the router settings that do not come from handlers
type Options struct {
	CORSOrigins []string
	// UploadDir is served read-only at /uploads when set
	UploadDir string
	Metrics   *middleware.Metrics
}

// SetupRouter configures the application routes
func SetupRouter(authHandler *api.AuthHandler, recipeHandler *api.RecipeHandler, opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger())
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}
	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", api.HealthCheck)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if opts.UploadDir != "" {
		router.Static(storage.PublicPrefix, opts.UploadDir)
	}

	apiGroup := router.Group("/api")
	authHandler.RegisterRoutes(apiGroup)
	recipeHandler.RegisterRoutes(apiGroup)

	return router
}
