package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionUndo   AuditAction = "undo"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Quel utilisateur ?
	UserID   uint   `json:"user_id"`
	UserName string `gorm:"size:100" json:"user_name"` // nom dénormalisé

	// Quelle entité ? (ex: "payment", "expense", "landlord", "building")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	// Type d'opération : create/update/delete/undo
	Action AuditAction `gorm:"size:20" json:"action"`

	// Petit résumé optionnel
	Description string `gorm:"size:255" json:"description"`

	// État avant / après (JSON)
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`

	// Ce log résulte-t-il d'un undo ?
	Undone bool `json:"undone"`

	// Ce log a-t-il été annulé ?
	IsUndone bool `gorm:"default:false" json:"is_undone"`

	UndoneBy *uint      `json:"undone_by"`
	UndoneAt *time.Time `json:"undone_at"`
}
