package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/chefapp/backend/internal/apperr"
	"github.com/pageza/chefapp/backend/internal/database"
	"github.com/pageza/chefapp/backend/internal/logging"
	"github.com/pageza/chefapp/backend/internal/models"
	"github.com/pageza/chefapp/backend/internal/types"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenTTL is how long an issued token stays valid
const TokenTTL = 30 * 24 * time.Hour

// Client-facing messages
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgInvalidToken       = "Not authorized, token failed"
	MsgUserExists         = "User already exists"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgLoginFields        = "Please provide email and password"
)

// AuthService registers users, checks credentials and issues tokens
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	log       zerolog.Logger
}

// Ensure AuthService implements IAuthService
var _ IAuthService = (*AuthService)(nil)

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		log:       logging.NewServiceLogger("auth"),
	}
}

// Register creates an account and returns a token for it
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req, "Invalid registration data"); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperr.Validation(MsgPasswordMismatch)
	}

	// Check if user already exists
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	if count > 0 {
		return nil, apperr.Conflict(MsgUserExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict(MsgUserExists)
		}
		return nil, apperr.Internal("Server error", err)
	}
	s.log.Info().Str(logging.USER, user.ID.String()).Msg("user registered")

	return s.issue(&user)
}

// Login checks credentials. Unknown email and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*types.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation(MsgLoginFields)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Credentials(MsgInvalidCredentials)
		}
		return nil, apperr.Internal("Server error", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Credentials(MsgInvalidCredentials)
	}

	return s.issue(&user)
}

func (s *AuthService) issue(user *models.User) (*types.AuthResult, error) {
	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	return &types.AuthResult{Token: token, User: user.Public()}, nil
}

// GenerateToken signs an HS256 token for userID
func (s *AuthService) GenerateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken verifies a token. Every failure yields the same auth error.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	if tokenString == "" {
		return nil, apperr.Auth(MsgInvalidToken)
	}

	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, &apperr.Error{Kind: apperr.KindAuth, Message: MsgInvalidToken, Err: err}
	}
	if claims.UserID == uuid.Nil || claims.Subject != claims.UserID.String() {
		return nil, apperr.Auth(MsgInvalidToken)
	}

	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
