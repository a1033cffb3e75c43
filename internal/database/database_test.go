package database

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pageza/chefapp/backend/config"
	"github.com/pageza/chefapp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open("sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))

	user := models.User{Name: "Test User", Email: "test@example.com", PasswordHash: "hashedpassword"}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEqual(t, uuid.Nil, user.ID)

	dup := models.User{Name: "Other", Email: "test@example.com", PasswordHash: "x"}
	err = db.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestDropAll(t *testing.T) {
	db, err := Open("sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))

	require.NoError(t, DropAll(db))
	assert.False(t, db.Migrator().HasTable(&models.Recipe{}))
	assert.False(t, db.Migrator().HasTable(&models.User{}))
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	_, err := Open("mysql://localhost/db")
	assert.Error(t, err)
}

func TestConnectCachesHandle(t *testing.T) {
	t.Cleanup(func() { _ = Close() })
	cfg := &config.Config{DatabaseURL: "sqlite://" + filepath.Join(t.TempDir(), "chef.db")}

	first, err := Connect(cfg)
	require.NoError(t, err)
	second, err := Connect(cfg)
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = Connect(&config.Config{DatabaseURL: "sqlite://:memory:"})
	assert.Error(t, err)

	require.NoError(t, Close())
	require.NoError(t, Close())

	third, err := Connect(cfg)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
}
