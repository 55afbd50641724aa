package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"    // payé
	PaymentStatusUnpaid  PaymentStatus = "unpaid"  // impayé
	PaymentStatusPartial PaymentStatus = "partial" // partiel
)

// Payment: encaissement de loyer pour un mois donné.
// AgencyShare et OwnerShare sont calculés une seule fois à la saisie
// (taux de commission du bailleur) et stockés dénormalisés.
// AgencyShare + OwnerShare = TotalAmount, toujours.
type Payment struct {
	ID          uint `gorm:"primaryKey"`
	ContractID  uint `gorm:"index;not null"`
	Contract    Contract
	Reference   string        `gorm:"size:30;uniqueIndex;not null"` // ex: LOY-2025-000123
	TotalAmount float64       `gorm:"not null"`
	AgencyShare float64       `gorm:"not null"` // honoraires de gestion
	OwnerShare  float64       `gorm:"not null"` // part bailleur
	PeriodMonth time.Time     `gorm:"index;not null"` // premier jour du mois concerné
	PaymentDate time.Time     `gorm:"index;not null"`
	Status      PaymentStatus `gorm:"size:20;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
