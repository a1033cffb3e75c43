package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pageza/chefapp/backend/config"
	"github.com/pageza/chefapp/backend/internal/api"
	"github.com/pageza/chefapp/backend/internal/logging"
	"github.com/pageza/chefapp/backend/internal/middleware"
	"github.com/pageza/chefapp/backend/internal/router"
	"github.com/pageza/chefapp/backend/internal/service"
	"github.com/pageza/chefapp/backend/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New wires services, handlers and the router for cfg
func New(cfg *config.Config, db *gorm.DB) (*Server, error) {
	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	recipeService := service.NewRecipeService(db)

	authHandler := api.NewAuthHandler(authService, profileService, store, cfg.MaxUploadBytes)
	recipeHandler := api.NewRecipeHandler(recipeService, authService, store, cfg.MaxUploadBytes)

	opts := router.Options{
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     middleware.NewMetrics(),
	}
	if _, ok := store.(*storage.LocalStore); ok {
		opts.UploadDir = cfg.UploadDir
	}

	r := router.SetupRouter(authHandler, recipeHandler, opts)
	return &Server{
		router: r,
		db:     db,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	log.Info().Str(logging.SERVICE, "server").Str("addr", s.http.Addr).Msg("chef API server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
