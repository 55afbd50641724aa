package models

import "time"

// Contract: bail liant un locataire à un lot
type Contract struct {
	ID         uint `gorm:"primaryKey"`
	TenantID   uint `gorm:"index;not null"`
	Tenant     Tenant
	UnitID     uint `gorm:"index;not null"`
	Unit       Unit
	StartDate  time.Time `gorm:"index;not null"`
	EndDate    time.Time `gorm:"not null"`
	RentAmount float64   `gorm:"not null"` // loyer mensuel contractuel
	Deposit    float64   `gorm:"default:0"` // dépôt de garantie
	Active     bool      `gorm:"default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
