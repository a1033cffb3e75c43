package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/chefapp/backend/internal/apperr"
	"github.com/pageza/chefapp/backend/internal/middleware"
	"github.com/pageza/chefapp/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Server is running"})
}

// caller returns the authenticated user or records an auth error
func caller(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.Error(apperr.Auth(service.MsgInvalidToken))
	}
	return id, ok
}
