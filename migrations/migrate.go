package main

import (
	"log"
	"os"

	"cryptoledger/src/config"
	"cryptoledger/src/database"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Fatalf("Error loading config for environment: %v", err)
	}
	if cfg.Databases.SQL.Driver == config.MemoryDriver {
		log.Println("In-memory ledger store configured, nothing to migrate")
		return
	}

	secrets, err := database.NewSecretGetter(cfg)
	if err != nil {
		log.Fatalf("Failed to create secret manager: %v", err)
	}
	sqlCfg, err := database.ResolveSQLConfig(cfg, secrets)
	if err != nil {
		log.Fatalf("Failed to resolve database settings: %v", err)
	}

	db, err := gorm.Open(postgres.Open(sqlCfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB from GORM DB: %v", err)
	}
	defer sqlDB.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Goose: failed to set dialect: %v", err)
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	if err := goose.Run(command, sqlDB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations (%s): %v", command, err)
	}

	log.Println("Database migration completed successfully")
}
