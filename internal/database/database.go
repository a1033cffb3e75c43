package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/pageza/chefapp/backend/config"
	"github.com/pageza/chefapp/backend/internal/logging"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	postgresScheme   = "postgres://"
	postgresqlScheme = "postgresql://"
	sqliteScheme     = "sqlite://"
)

var (
	mu      sync.Mutex
	conn    *gorm.DB
	connURL string
)

// Connect returns the process-wide database handle, opening it on first use.
// Later calls with the same URL reuse the handle.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if conn != nil {
		if connURL != cfg.DatabaseURL {
			return nil, fmt.Errorf("database already connected to a different url")
		}
		return conn, nil
	}

	db, err := Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	conn = db
	connURL = cfg.DatabaseURL
	return conn, nil
}

// Close tears down the cached handle. It is safe to call when nothing is open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	conn = nil
	connURL = ""
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Open creates a new GORM handle for a postgres:// or sqlite:// url
func Open(databaseURL string) (*gorm.DB, error) {
	l := logging.NewServiceLogger("database")
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger: logger.New(&l, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch {
	case strings.HasPrefix(databaseURL, postgresScheme), strings.HasPrefix(databaseURL, postgresqlScheme):
		db, err = gorm.Open(postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        databaseURL,
		}), gormCfg)
	case strings.HasPrefix(databaseURL, sqliteScheme):
		db, err = gorm.Open(sqlite.Open(strings.TrimPrefix(databaseURL, sqliteScheme)), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database url scheme")
	}
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting sql.DB: %w", err)
	}
	if db.Dialector.Name() == "sqlite" {
		// in-memory databases are per connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Info().Str(logging.SERVICE, "database").Str("dialect", db.Dialector.Name()).Msg("connected to database")
	return db, nil
}

// HealthCheck checks if the database is accessible
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// IsUniqueViolation reports whether err comes from a unique index
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
