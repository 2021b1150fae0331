package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"laundryhub/internal/config"
	"laundryhub/internal/database"
	"laundryhub/internal/repository"
)

// Deletes expired refresh tokens. Meant to run from cron or a container
// scheduler, not as a long-lived process.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	purged, err := repository.NewRefreshTokenRepository(db).PurgeExpired(context.Background())
	if err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d", purged)
}
