package models

import "time"

type ExpenseCategory struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expense: charge d'exploitation, rattachée ou non à un immeuble
type Expense struct {
	ID          uint `gorm:"primaryKey"`
	CategoryID  uint `gorm:"index;not null"`
	Category    ExpenseCategory
	BuildingID  *uint `gorm:"index"` // nil = charge générale de l'agence
	Building    *Building
	Date        time.Time `gorm:"index;not null"`
	Amount      float64   `gorm:"not null"`
	Description string    `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
