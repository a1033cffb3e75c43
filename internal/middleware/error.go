package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/chefapp/backend/internal/apperr"
	"github.com/rs/zerolog/log"
)

// MsgServerError is the only message unclassified failures expose
const MsgServerError = "Server error"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// ErrorHandler renders the last error attached with c.Error and turns
// panics into a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str(RequestIDKey, RequestID(c)).
					Interface("panic", rec).
					Str("path", c.Request.URL.Path).
					Msg("recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Message: MsgServerError})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		status, body := renderError(c, c.Errors.Last().Err)
		c.JSON(status, body)
	}
}

func renderError(c *gin.Context, err error) (int, ErrorResponse) {
	ae, ok := apperr.As(err)
	if !ok || ae.Kind == apperr.KindInternal {
		log.Error().
			Err(err).
			Str(RequestIDKey, RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		return http.StatusInternalServerError, ErrorResponse{Message: MsgServerError}
	}
	return ae.HTTPStatus(), ErrorResponse{Message: ae.Message, Errors: ae.Details}
}
