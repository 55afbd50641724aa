package models

import "time"

type Building struct {
	ID         uint   `gorm:"primaryKey"`
	LandlordID uint   `gorm:"index;not null"`
	Landlord   Landlord
	Name       string `gorm:"size:100;not null"`
	Address    string `gorm:"size:255"`
	Active     bool   `gorm:"default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Units []Unit
}
