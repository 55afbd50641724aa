package models

import "time"

type UnitStatus string

const (
	UnitStatusVacant      UnitStatus = "vacant"      // vacant
	UnitStatusOccupied    UnitStatus = "occupied"    // occupé
	UnitStatusMaintenance UnitStatus = "maintenance" // en travaux
)

// Unit: lot (appartement, local, ...) dans un immeuble
type Unit struct {
	ID         uint `gorm:"primaryKey"`
	BuildingID uint `gorm:"index;not null"`
	Building   Building
	Name       string     `gorm:"size:100;not null"` // ex: "Appartement 2B"
	BaseRent   float64    `gorm:"not null"`          // loyer de base
	Status     UnitStatus `gorm:"size:20;not null;default:vacant"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
