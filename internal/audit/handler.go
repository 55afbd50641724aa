package audit

import (
	"fmt"

	"gestimmo-backend/internal/auth"
	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserID      uint               `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	IsUndone    bool               `json:"is_undone"`
	UndoneBy    *uint              `json:"undone_by"`
	UndoneAt    *string            `json:"undone_at"`
}

// GET /api/audit-logs?entity_type=payment&entity_id=1&user_id=2
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityType := c.Query("entity_type")
		entityIDStr := c.Query("entity_id")
		userIDStr := c.Query("user_id")

		dbq := database.DB.Model(&models.AuditLog{})

		if userIDStr != "" {
			var uid uint
			if _, err := fmt.Sscan(userIDStr, &uid); err == nil && uid > 0 {
				dbq = dbq.Where("user_id = ?", uid)
			}
		}

		if entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}

		if entityIDStr != "" {
			var eid uint
			if _, err := fmt.Sscan(entityIDStr, &eid); err == nil && eid > 0 {
				dbq = dbq.Where("entity_id = ?", eid)
			}
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC").Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Liste des logs impossible")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, log := range logs {
			var undoneAtStr *string
			if log.UndoneAt != nil {
				formatted := log.UndoneAt.Format("2006-01-02 15:04:05")
				undoneAtStr = &formatted
			}

			resp = append(resp, AuditLogResponse{
				ID:          log.ID,
				CreatedAt:   log.CreatedAt.Format("2006-01-02 15:04:05"),
				UserID:      log.UserID,
				UserName:    log.UserName,
				EntityType:  log.EntityType,
				EntityID:    log.EntityID,
				Action:      log.Action,
				Description: log.Description,
				IsUndone:    log.IsUndone,
				UndoneBy:    log.UndoneBy,
				UndoneAt:    undoneAtStr,
			})
		}

		return c.JSON(resp)
	}
}

// POST /api/audit-logs/:id/undo
func UndoAuditLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		logIDStr := c.Params("id")
		var logID uint
		if _, err := fmt.Sscan(logIDStr, &logID); err != nil || logID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID de log invalide")
		}

		userIDVal := c.Locals(auth.CtxUserIDKey)
		userID, ok := userIDVal.(uint)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Utilisateur introuvable")
		}

		roleVal := c.Locals(auth.CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rôle introuvable")
		}
		if role != models.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Seul un admin peut annuler une opération")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Utilisateur introuvable")
		}

		if err := UndoLog(logID, userID, user.Name); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"message": "Opération annulée",
		})
	}
}
