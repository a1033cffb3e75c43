package main

import (
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pageza/chefapp/backend/config"
	"github.com/pageza/chefapp/backend/internal/database"
	"github.com/pageza/chefapp/backend/internal/logging"
)

func main() {
	drop := flag.Bool("drop", false, "Drop every table instead of migrating")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()

	if *drop {
		if err := database.DropAll(db); err != nil {
			log.Fatal().Err(err).Msg("failed to drop tables")
		}
		fmt.Println("All tables dropped.")
		return
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}
	fmt.Println("All migrations applied successfully.")
}
