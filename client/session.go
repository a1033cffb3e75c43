package client

import (
	"context"
	"net/http"

	"github.com/pageza/chefapp/backend/internal/models"
	"github.com/pageza/chefapp/backend/internal/types"
)

// Session tracks the signed-in user of a Client
type Session struct {
	client *Client
	user   *models.User
}

func NewSession(c *Client) *Session {
	return &Session{client: c}
}

// User returns the resolved profile, or nil when signed out
func (s *Session) User() *models.User {
	return s.user
}

func (s *Session) LoggedIn() bool {
	return s.user != nil
}

// Restore resolves the profile for a previously stored token. A token the
// server rejects is dropped and the session stays signed out.
func (s *Session) Restore(ctx context.Context) (*models.User, error) {
	token, err := s.client.tokens.Load()
	if err != nil || token == "" {
		return nil, err
	}

	user, err := s.client.Profile(ctx)
	if StatusOf(err) == http.StatusUnauthorized || StatusOf(err) == http.StatusNotFound {
		s.user = nil
		return nil, s.client.tokens.Clear()
	}
	if err != nil {
		return nil, err
	}
	s.user = user
	return user, nil
}

// Register creates an account and signs in with it
func (s *Session) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error) {
	result, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, result)
}

func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, result)
}

func (s *Session) signIn(ctx context.Context, result *types.AuthResult) (*models.User, error) {
	if err := s.client.tokens.Save(result.Token); err != nil {
		return nil, err
	}
	s.user = &models.User{ID: result.User.ID, Name: result.User.Name, Email: result.User.Email}
	if user, err := s.client.Profile(ctx); err == nil {
		s.user = user
	}
	return s.user, nil
}

// Logout forgets the token and the profile
func (s *Session) Logout() error {
	s.user = nil
	return s.client.tokens.Clear()
}

// UpdateProfile saves the changes and re-fetches the full profile
func (s *Session) UpdateProfile(ctx context.Context, req *types.UpdateProfileRequest, image *Image) (*models.User, error) {
	if _, err := s.client.UpdateProfile(ctx, req, image); err != nil {
		return nil, err
	}
	user, err := s.client.Profile(ctx)
	if err != nil {
		return nil, err
	}
	s.user = user
	return user, nil
}
