package models

import "time"

// Revenue: produit divers (frais de dossier, pénalités, ...).
// Jamais inclus dans le reversement bailleur.
type Revenue struct {
	ID         uint `gorm:"primaryKey"`
	BuildingID *uint `gorm:"index"`
	Building   *Building
	Date       time.Time `gorm:"index;not null"`
	Amount     float64   `gorm:"not null"`
	Label      string    `gorm:"size:255;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
