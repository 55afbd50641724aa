package models

import "time"

type Tenant struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:100"`
	Phone     string `gorm:"size:50"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
