// Package client is a typed Go client for the chef recipe API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pageza/chefapp/backend/internal/models"
	"github.com/pageza/chefapp/backend/internal/types"
)

// DefaultBaseURL is the API root of a locally running server
const DefaultBaseURL = "http://localhost:5000/api"

// APIError is a non-2xx answer from the server
type APIError struct {
	Status  int
	Message string
	Details map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// StatusOf returns the HTTP status carried by err, or 0
func StatusOf(err error) int {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Status
	}
	return 0
}

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// Client talks to the recipe API. The bearer token is read from its
// TokenStore on every request.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a client for baseURL, the API root (".../api")
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokens returns the store the client reads its token from
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	token, err := c.tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var body errorBody
		if json.Unmarshal(raw, &body) == nil {
			apiErr.Message = body.Message
			apiErr.Details = body.Errors
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) doMultipart(ctx context.Context, method, path string, fields url.Values, image *Image, imageField string, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, v := range values {
			if err := mw.WriteField(key, v); err != nil {
				return err
			}
		}
	}
	if err := image.writePart(mw, imageField); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, method, path, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Health returns the server status line
func (c *Client) Health(ctx context.Context) (string, error) {
	root := strings.TrimSuffix(c.baseURL, "/api")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root+"/health", nil)
	if err != nil {
		return "", err
	}
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

type authResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Register creates an account. The returned token is not stored.
func (c *Client) Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResult, error) {
	var out authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &types.AuthResult{Token: out.Token, User: out.User}, nil
}

// Login exchanges credentials for a token. The token is not stored.
func (c *Client) Login(ctx context.Context, email, password string) (*types.AuthResult, error) {
	var out authResponse
	in := types.LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", &in, &out); err != nil {
		return nil, err
	}
	return &types.AuthResult{Token: out.Token, User: out.User}, nil
}

type userResponse struct {
	User models.User `json:"user"`
}

// Profile fetches the caller's profile
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out userResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UpdateProfile changes name, bio or picture. A non-nil image is sent as
// the new profile picture.
func (c *Client) UpdateProfile(ctx context.Context, req *types.UpdateProfileRequest, image *Image) (*models.User, error) {
	var out userResponse
	if image == nil {
		if err := c.doJSON(ctx, http.MethodPut, "/auth/profile", req, &out); err != nil {
			return nil, err
		}
		return &out.User, nil
	}

	if err := image.check(MaxProfileImageBytes); err != nil {
		return nil, err
	}
	fields := url.Values{}
	setString(fields, "name", req.Name)
	setString(fields, "bio", req.Bio)
	if err := c.doMultipart(ctx, http.MethodPut, "/auth/profile", fields, image, ProfileImageField, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

type recipeResponse struct {
	Recipe models.Recipe `json:"recipe"`
}

type recipeListResponse struct {
	Count   int             `json:"count"`
	Recipes []models.Recipe `json:"recipes"`
}

// ListRecipes returns every recipe matching filter
func (c *Client) ListRecipes(ctx context.Context, filter types.RecipeFilter) ([]models.Recipe, error) {
	q := url.Values{}
	for key, v := range map[string]string{
		"search":      filter.Search,
		"category":    filter.Category,
		"difficulty":  filter.Difficulty,
		"cuisineType": filter.CuisineType,
		"dietary":     filter.Dietary,
		"sortBy":      filter.SortBy,
	} {
		if v != "" {
			q.Set(key, v)
		}
	}
	path := "/recipes"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out recipeListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Recipes == nil {
		out.Recipes = []models.Recipe{}
	}
	return out.Recipes, nil
}

// GetRecipe fetches a single recipe the caller owns
func (c *Client) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	var out recipeResponse
	if err := c.doJSON(ctx, http.MethodGet, "/recipes/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Recipe, nil
}

// CreateRecipe stores a new recipe, optionally with an image
func (c *Client) CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest, image *Image) (*models.Recipe, error) {
	var out recipeResponse
	if image == nil {
		if err := c.doJSON(ctx, http.MethodPost, "/recipes", req, &out); err != nil {
			return nil, err
		}
		return &out.Recipe, nil
	}

	if err := image.check(MaxRecipeImageBytes); err != nil {
		return nil, err
	}
	fields, err := createFields(req)
	if err != nil {
		return nil, err
	}
	if err := c.doMultipart(ctx, http.MethodPost, "/recipes", fields, image, RecipeImageField, &out); err != nil {
		return nil, err
	}
	return &out.Recipe, nil
}

// UpdateRecipe applies a partial update, optionally replacing the image
func (c *Client) UpdateRecipe(ctx context.Context, id string, req *types.UpdateRecipeRequest, image *Image) (*models.Recipe, error) {
	var out recipeResponse
	path := "/recipes/" + url.PathEscape(id)
	if image == nil {
		if err := c.doJSON(ctx, http.MethodPut, path, req, &out); err != nil {
			return nil, err
		}
		return &out.Recipe, nil
	}

	if err := image.check(MaxRecipeImageBytes); err != nil {
		return nil, err
	}
	fields, err := updateFields(req)
	if err != nil {
		return nil, err
	}
	if err := c.doMultipart(ctx, http.MethodPut, path, fields, image, RecipeImageField, &out); err != nil {
		return nil, err
	}
	return &out.Recipe, nil
}

// DeleteRecipe removes a recipe the caller owns
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/recipes/"+url.PathEscape(id), nil, nil)
}
