// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Movie represents a tracked movie in the personal collection.
type Movie struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"unique;not null" json:"title"`
	Year        int     `gorm:"not null" json:"year"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Rating      float64 `gorm:"not null" json:"rating"`
	// Ranking is derived from Rating on every listing read: 1 for the
	// highest-rated movie, N for the lowest. It is stored but never
	// authoritative.
	Ranking   int       `json:"ranking"`
	Review    string    `gorm:"type:text" json:"review"`
	ImageURL  string    `json:"img_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
