package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Insecure local fallbacks. They must be overridden in any real deployment.
const (
	DefaultPort        = "5000"
	DefaultDatabaseURL = "sqlite://chef-app.db"
	DefaultJWTSecret   = "your_jwt_secret_key_change_in_production"
	DefaultUploadDir   = "uploads"
	DefaultMaxUpload   = 5 << 20
)

// Upload backends
const (
	UploadBackendLocal = "local"
	UploadBackendS3    = "s3"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DatabaseURL string

	// JWT configuration
	JWTSecret string

	// Upload configuration
	UploadDir      string
	UploadBackend  string
	MaxUploadBytes int64
	S3BucketName   string
	AWSRegion      string

	// Logging
	LogLevel  string
	LogFormat string
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// UsingDefaultSecret reports whether the token secret is the built-in fallback
func (c *Config) UsingDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// LoadConfig reads configuration from an optional .env file, the process
// environment and Docker secrets, then validates it.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	env := GetEnvironment()
	cfg := &Config{
		Env:           env,
		ServerPort:    getEnv("PORT", DefaultPort),
		ServerHost:    getEnv("SERVER_HOST", ""),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		DatabaseURL:   getEnv("DATABASE_URL", DefaultDatabaseURL),
		JWTSecret:     getEnv("JWT_SECRET", DefaultJWTSecret),
		UploadDir:     getEnv("UPLOAD_DIR", DefaultUploadDir),
		UploadBackend: strings.ToLower(getEnv("UPLOAD_BACKEND", UploadBackendLocal)),
		S3BucketName:  os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:     os.Getenv("AWS_REGION"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", env.DefaultLogFormat()),
	}

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", strconv.Itoa(DefaultMaxUpload)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
	}
	cfg.MaxUploadBytes = maxUpload

	// Docker secrets win over plain environment variables
	if secret := readSecret("jwt_secret"); secret != "" {
		cfg.JWTSecret = secret
	}
	if dsn := readSecret("database_url"); dsn != "" {
		cfg.DatabaseURL = dsn
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if cfg.UsingDefaultSecret() {
		log.Warn().Msg("JWT_SECRET is not set, using the insecure built-in default")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
