package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/chefapp/backend/config"
	"github.com/pageza/chefapp/backend/internal/testhelpers"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:            config.Test,
		ServerHost:     "localhost",
		ServerPort:     "8080",
		JWTSecret:      "test-secret",
		CORSOrigins:    []string{"*"},
		UploadDir:      t.TempDir(),
		UploadBackend:  config.UploadBackendLocal,
		MaxUploadBytes: config.DefaultMaxUpload,
	}
}

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDatabase(t)

	server, err := New(testConfig(t), db)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", server.http.Addr)

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"Server is running"}`, w.Body.String())

	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "chefapp_http_requests_total"), w.Body.String())
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	cfg := testConfig(t)
	cfg.UploadBackend = "ftp"

	_, err := New(cfg, db)
	assert.Error(t, err)
}
