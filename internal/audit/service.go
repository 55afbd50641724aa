package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// jsonb Postgres : "null" plutôt qu'une chaîne vide
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
		Undone:      false,
		IsUndone:    false,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("écriture du log d'audit impossible: %w", err)
	}

	return nil
}

// UndoLog - annule l'opération tracée par un log d'audit
func UndoLog(logID uint, userID uint, userName string) error {
	var log models.AuditLog
	if err := database.DB.First(&log, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log introuvable: %w", err)
	}

	if log.IsUndone {
		return fmt.Errorf("cette opération a déjà été annulée")
	}

	switch log.Action {
	case models.AuditActionCreate:
		// create → on supprime l'entité
		if err := deleteEntity(log.EntityType, log.EntityID); err != nil {
			return fmt.Errorf("suppression de l'entité impossible: %w", err)
		}

	case models.AuditActionUpdate:
		// update → on restaure l'état précédent
		if err := restoreEntity(log.EntityType, log.EntityID, log.BeforeData); err != nil {
			return fmt.Errorf("restauration de l'entité impossible: %w", err)
		}

	case models.AuditActionDelete:
		// delete → on recrée l'entité
		if err := recreateEntity(log.EntityType, log.AfterData); err != nil {
			return fmt.Errorf("recréation de l'entité impossible: %w", err)
		}

	default:
		return fmt.Errorf("ce type d'opération n'est pas annulable")
	}

	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &userID
	log.UndoneAt = &now

	if err := database.DB.Save(&log).Error; err != nil {
		return fmt.Errorf("mise à jour du log impossible: %w", err)
	}

	undoLog := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Annulé : %s", log.Description),
		BeforeData:  log.AfterData,
		AfterData:   log.BeforeData,
		Undone:      true,
		IsUndone:    false,
	}

	if err := database.DB.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("écriture du log d'annulation impossible: %w", err)
	}

	return nil
}

func deleteEntity(entityType string, entityID uint) error {
	switch entityType {
	case "payment":
		return database.DB.Delete(&models.Payment{}, "id = ?", entityID).Error
	case "expense":
		return database.DB.Delete(&models.Expense{}, "id = ?", entityID).Error
	case "revenue":
		return database.DB.Delete(&models.Revenue{}, "id = ?", entityID).Error
	default:
		return fmt.Errorf("type d'entité inconnu: %s", entityType)
	}
}

func recreateEntity(entityType string, dataJSON string) error {
	switch entityType {
	case "payment":
		var payment models.Payment
		if err := json.Unmarshal([]byte(dataJSON), &payment); err != nil {
			return err
		}
		payment.ID = 0
		return database.DB.Create(&payment).Error

	case "expense":
		var expense models.Expense
		if err := json.Unmarshal([]byte(dataJSON), &expense); err != nil {
			return err
		}
		expense.ID = 0
		return database.DB.Create(&expense).Error

	case "revenue":
		var revenue models.Revenue
		if err := json.Unmarshal([]byte(dataJSON), &revenue); err != nil {
			return err
		}
		revenue.ID = 0
		return database.DB.Create(&revenue).Error

	default:
		return fmt.Errorf("type d'entité inconnu: %s", entityType)
	}
}

func restoreEntity(entityType string, entityID uint, dataJSON string) error {
	switch entityType {
	case "payment":
		var payment models.Payment
		if err := json.Unmarshal([]byte(dataJSON), &payment); err != nil {
			return err
		}
		return database.DB.Model(&models.Payment{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"contract_id":  payment.ContractID,
			"total_amount": payment.TotalAmount,
			"agency_share": payment.AgencyShare,
			"owner_share":  payment.OwnerShare,
			"period_month": payment.PeriodMonth,
			"payment_date": payment.PaymentDate,
			"status":       payment.Status,
		}).Error

	case "expense":
		var expense models.Expense
		if err := json.Unmarshal([]byte(dataJSON), &expense); err != nil {
			return err
		}
		return database.DB.Model(&models.Expense{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"category_id": expense.CategoryID,
			"building_id": expense.BuildingID,
			"date":        expense.Date,
			"amount":      expense.Amount,
			"description": expense.Description,
		}).Error

	case "revenue":
		var revenue models.Revenue
		if err := json.Unmarshal([]byte(dataJSON), &revenue); err != nil {
			return err
		}
		return database.DB.Model(&models.Revenue{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"building_id": revenue.BuildingID,
			"date":        revenue.Date,
			"amount":      revenue.Amount,
			"label":       revenue.Label,
		}).Error

	default:
		return fmt.Errorf("type d'entité inconnu: %s", entityType)
	}
}
