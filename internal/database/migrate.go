package database

import (
	"fmt"

	"github.com/pageza/chefapp/backend/internal/logging"
	"github.com/pageza/chefapp/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date with the models
func RunMigrations(db *gorm.DB) error {
	log.Info().Str(logging.SERVICE, "database").Str("dialect", db.Dialector.Name()).Msg("running auto-migration")
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// DropAll removes every model table, dependents first
func DropAll(db *gorm.DB) error {
	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}
