package entities

import "time"

type GalleryItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Service is an entry of the public services catalog managed from the dashboard.
type Service struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Features    []string      `json:"features"`
	Benefits    []string      `json:"benefits"`
	Gallery     []GalleryItem `json:"gallery"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
