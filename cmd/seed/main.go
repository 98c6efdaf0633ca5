package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/kotobukicho/kotobuki/config"
	"github.com/kotobukicho/kotobuki/internal/application"
	"github.com/kotobukicho/kotobuki/pkg/helpers"
)

// Seeds a demo account and a few demo cards for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not configured")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@kotobukicho.example"
	password := "kotobuki"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id
	`, email, hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	demoCards := []struct {
		title, description, category, imageURL string
	}{
		{"Shamisen evening", "Street performance near the old bridge.", "music", "https://storage.googleapis.com/demo/card-images/shamisen.jpg"},
		{"Lantern festival", "Paper lanterns along the river.", "festival", "https://storage.googleapis.com/demo/card-images/lantern.jpg"},
		{"Tea house", "Morning service in the garden.", "food", "https://storage.googleapis.com/demo/card-images/teahouse.jpg"},
		{"Calligraphy class", "Practicing kana on washi paper.", "craft", "https://storage.googleapis.com/demo/card-images/shodo.jpg"},
	}

	for _, d := range demoCards {
		cardID := application.GenerateCardID()
		_, err := db.Exec(`
			INSERT INTO cards (user_id, card_id, title, description, category, image_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now(), now())
			ON CONFLICT (card_id) DO NOTHING
		`, userID, cardID, d.title, d.description, d.category, d.imageURL)
		if err != nil {
			log.Fatalf("failed to seed card %q: %v", d.title, err)
		}
		fmt.Printf("seeded card: %s (%s)\n", d.title, cardID)
	}
}
