package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration and reports every problem at once
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{"PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	if !strings.HasPrefix(cfg.DatabaseURL, "postgres://") &&
		!strings.HasPrefix(cfg.DatabaseURL, "postgresql://") &&
		!strings.HasPrefix(cfg.DatabaseURL, "sqlite://") {
		errs = append(errs, ValidationError{"DATABASE_URL", "must start with postgres://, postgresql:// or sqlite://"})
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "must not be empty"})
	}
	if cfg.Env == Production && cfg.UsingDefaultSecret() {
		errs = append(errs, ValidationError{"JWT_SECRET", "the built-in default is not allowed in production"})
	}

	switch cfg.UploadBackend {
	case UploadBackendLocal:
		if cfg.UploadDir == "" {
			errs = append(errs, ValidationError{"UPLOAD_DIR", "must not be empty"})
		}
	case UploadBackendS3:
		if cfg.S3BucketName == "" {
			errs = append(errs, ValidationError{"S3_BUCKET_NAME", "required when UPLOAD_BACKEND=s3"})
		}
	default:
		errs = append(errs, ValidationError{"UPLOAD_BACKEND", fmt.Sprintf("unknown backend %q", cfg.UploadBackend)})
	}

	if cfg.MaxUploadBytes <= 0 {
		errs = append(errs, ValidationError{"MAX_UPLOAD_BYTES", "must be positive"})
	}

	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%s", strings.Join(msgs, "\n"))
}
