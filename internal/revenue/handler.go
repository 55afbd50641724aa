package revenue

import (
	"fmt"
	"strings"
	"time"

	"gestimmo-backend/internal/audit"
	"gestimmo-backend/internal/auth"
	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateRevenueRequest struct {
	Date       string  `json:"date"`
	BuildingID *uint   `json:"building_id"`
	Amount     float64 `json:"amount"`
	Label      string  `json:"label"`
}

type RevenueResponse struct {
	ID         uint    `json:"id"`
	BuildingID *uint   `json:"building_id"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	Label      string  `json:"label"`
}

// POST /api/revenues
// Produits divers (frais de dossier, pénalités...), hors reversement bailleur.
func CreateRevenueHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRevenueRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.Label = strings.TrimSpace(body.Label)
		if body.Label == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Le libellé est obligatoire")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Montant invalide")
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date invalide (AAAA-MM-JJ)")
		}

		if body.BuildingID != nil {
			var b models.Building
			if err := database.DB.First(&b, "id = ?", *body.BuildingID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Immeuble introuvable")
			}
		}

		rev := models.Revenue{
			BuildingID: body.BuildingID,
			Date:       date,
			Amount:     body.Amount,
			Label:      body.Label,
		}

		if err := database.DB.Create(&rev).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Enregistrement du produit impossible")
		}

		userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
		var user models.User
		database.DB.First(&user, "id = ?", userID)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    user.Name,
			EntityType:  "revenue",
			EntityID:    rev.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Produit %s %.2f", rev.Label, rev.Amount),
			After:       rev,
		})

		return c.Status(fiber.StatusCreated).JSON(RevenueResponse{
			ID:         rev.ID,
			BuildingID: rev.BuildingID,
			Date:       rev.Date.Format("2006-01-02"),
			Amount:     rev.Amount,
			Label:      rev.Label,
		})
	}
}

// GET /api/revenues?year=2025&month=3
func ListRevenuesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Revenue{})

		yearStr := c.Query("year")
		monthStr := c.Query("month")
		if yearStr != "" && monthStr != "" {
			var year, month int
			if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
				return fiber.NewError(fiber.StatusBadRequest, "year invalide")
			}
			if _, err := fmt.Sscan(monthStr, &month); err != nil || month < 1 || month > 12 {
				return fiber.NewError(fiber.StatusBadRequest, "month invalide")
			}
			monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			dbq = dbq.Where("date >= ? AND date < ?", monthStart, monthStart.AddDate(0, 1, 0))
		}

		var revenues []models.Revenue
		if err := dbq.Order("date DESC, id DESC").Find(&revenues).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Liste des produits impossible")
		}

		resp := make([]RevenueResponse, 0, len(revenues))
		for _, rev := range revenues {
			resp = append(resp, RevenueResponse{
				ID:         rev.ID,
				BuildingID: rev.BuildingID,
				Date:       rev.Date.Format("2006-01-02"),
				Amount:     rev.Amount,
				Label:      rev.Label,
			})
		}
		return c.JSON(resp)
	}
}
