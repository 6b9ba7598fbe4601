// Command migrate applies the schema to the configured database.
package main

import (
	"fmt"
	"log"

	"snsproject/internal/config"
	"snsproject/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dialector, err := database.Dialector(cfg)
	if err != nil {
		return err
	}
	db, err := database.Open(dialector)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	log.Println("automigrations applied")
	return nil
}
