package main

import (
	"log"

	"notes-sharing-be/internal/config"
	"notes-sharing-be/internal/model"
	"notes-sharing-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("DB_URI must be set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// gen_random_uuid() needs pgcrypto on Postgres < 13.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		log.Fatalf("Failed to ensure pgcrypto extension: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Note{},
		&model.UserNoteMapping{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed")
}
