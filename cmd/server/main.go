package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/open-academy/academy-back/internal/api"
	"github.com/open-academy/academy-back/internal/config"
	"github.com/open-academy/academy-back/internal/cron"
	"github.com/open-academy/academy-back/internal/db"
	"github.com/open-academy/academy-back/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system env")
	}

	cfg := config.Load()

	db.InitDB(cfg.DBUrl)

	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to init syllabus storage: %v", err)
	}

	r := api.SetupRouter(cfg, store)

	// Start cron jobs
	cron.StartJobs()

	log.Println("Server running on :8000")
	r.Run(":8000")
}
