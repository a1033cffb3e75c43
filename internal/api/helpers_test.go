package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageza/chefapp/backend/internal/api"
	"github.com/pageza/chefapp/backend/internal/router"
	"github.com/pageza/chefapp/backend/internal/service"
	"github.com/pageza/chefapp/backend/internal/storage"
	"github.com/pageza/chefapp/backend/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	uploadDir string
}

func setupTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDatabase(t)
	uploadDir := t.TempDir()
	store, err := storage.NewLocalStore(uploadDir)
	require.NoError(t, err)

	authService := service.NewAuthService(db, testSecret)
	authHandler := api.NewAuthHandler(authService, service.NewProfileService(db), store, 5<<20)
	recipeHandler := api.NewRecipeHandler(service.NewRecipeService(db), authService, store, 5<<20)

	r := router.SetupRouter(authHandler, recipeHandler, router.Options{UploadDir: uploadDir})
	return &testEnv{router: r, db: db, uploadDir: uploadDir}
}

func (e *testEnv) send(t *testing.T, req *http.Request, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	body := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	}
	return w, body
}

func jsonRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	return e.send(t, jsonRequest(method, path, reader), token)
}

type filePart struct {
	field, filename, contentType string
	data                         []byte
}

func (e *testEnv) doMultipart(t *testing.T, method, path, token string, fields map[string]string, file *filePart) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.filename+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.send(t, req, token)
}

// register creates an account through the API and returns its token and id
func (e *testEnv) register(t *testing.T, name, email string) (string, string) {
	t.Helper()
	w, body := e.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123", "confirmPassword": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := body["user"].(map[string]interface{})
	return body["token"].(string), user["id"].(string)
}

func (e *testEnv) createRecipe(t *testing.T, token string, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	w, body := e.doJSON(t, http.MethodPost, "/api/recipes", token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return body["recipe"].(map[string]interface{})
}
