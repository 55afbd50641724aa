package models

import "time"

// Landlord: bailleur (propriétaire) géré par l'agence
type Landlord struct {
	ID             uint    `gorm:"primaryKey"`
	Name           string  `gorm:"size:100;not null"`
	Email          string  `gorm:"size:100"`
	Phone          string  `gorm:"size:50"` // téléphone optionnel
	CommissionRate float64 `gorm:"not null"` // taux de commission en % (ex: 10 = 10%)
	Active         bool    `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Buildings []Building
}
