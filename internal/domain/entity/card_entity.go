package entity

import (
	"time"
)

// Card pairs an image, text, and optional music, addressable by a short
// public identifier (CardID) distinct from the internal storage ID.
//
// MusicURL is an external link; MusicFileURL points at an uploaded asset.
// At most one is expected to be set, but the model does not enforce it.
type Card struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	CardID       string    `json:"card_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     *string   `json:"category"`
	ImageURL     string    `json:"image_url"`
	MusicURL     *string   `json:"music_url"`
	MusicFileURL *string   `json:"music_file_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
