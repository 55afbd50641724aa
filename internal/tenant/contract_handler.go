package tenant

import (
	"fmt"
	"time"

	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateContractRequest struct {
	TenantID   uint    `json:"tenant_id"`
	UnitID     uint    `json:"unit_id"`
	StartDate  string  `json:"start_date"` // "2025-01-01"
	EndDate    string  `json:"end_date"`
	RentAmount float64 `json:"rent_amount"`
	Deposit    float64 `json:"deposit"`
}

type ContractResponse struct {
	ID         uint    `json:"id"`
	TenantID   uint    `json:"tenant_id"`
	TenantName string  `json:"tenant_name"`
	UnitID     uint    `json:"unit_id"`
	UnitName   string  `json:"unit_name"`
	BuildingID uint    `json:"building_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	RentAmount float64 `json:"rent_amount"`
	Deposit    float64 `json:"deposit"`
	Active     bool    `json:"active"`
}

func toContractResponse(ct *models.Contract) ContractResponse {
	return ContractResponse{
		ID:         ct.ID,
		TenantID:   ct.TenantID,
		TenantName: ct.Tenant.Name,
		UnitID:     ct.UnitID,
		UnitName:   ct.Unit.Name,
		BuildingID: ct.Unit.BuildingID,
		StartDate:  ct.StartDate.Format("2006-01-02"),
		EndDate:    ct.EndDate.Format("2006-01-02"),
		RentAmount: ct.RentAmount,
		Deposit:    ct.Deposit,
		Active:     ct.Active,
	}
}

// POST /api/contracts
// La création du bail passe le lot en "occupied".
func CreateContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateContractRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.TenantID == 0 || body.UnitID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Locataire et lot obligatoires")
		}
		if body.RentAmount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Loyer invalide")
		}

		start, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_date invalide (AAAA-MM-JJ)")
		}
		end, err := time.Parse("2006-01-02", body.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "end_date invalide (AAAA-MM-JJ)")
		}
		if !end.After(start) {
			return fiber.NewError(fiber.StatusBadRequest, "end_date doit être après start_date")
		}

		var t models.Tenant
		if err := database.DB.First(&t, "id = ?", body.TenantID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Locataire introuvable")
		}

		var u models.Unit
		if err := database.DB.First(&u, "id = ?", body.UnitID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Lot introuvable")
		}

		var active int64
		database.DB.Model(&models.Contract{}).Where("unit_id = ? AND active = ?", body.UnitID, true).Count(&active)
		if active > 0 {
			return fiber.NewError(fiber.StatusConflict, "Un bail actif existe déjà sur ce lot")
		}

		ct := models.Contract{
			TenantID:   body.TenantID,
			UnitID:     body.UnitID,
			StartDate:  start,
			EndDate:    end,
			RentAmount: body.RentAmount,
			Deposit:    body.Deposit,
			Active:     true,
		}

		if err := database.DB.Create(&ct).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création du bail impossible")
		}

		database.DB.Model(&models.Unit{}).Where("id = ?", u.ID).Update("status", models.UnitStatusOccupied)

		ct.Tenant = t
		ct.Unit = u
		return c.Status(fiber.StatusCreated).JSON(toContractResponse(&ct))
	}
}

// GET /api/contracts?tenant_id=1&unit_id=2&active=true
func ListContractsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Contract{}).Preload("Tenant").Preload("Unit")

		if v := c.Query("tenant_id"); v != "" {
			var id uint
			if _, err := fmt.Sscan(v, &id); err != nil || id == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "tenant_id invalide")
			}
			dbq = dbq.Where("tenant_id = ?", id)
		}
		if v := c.Query("unit_id"); v != "" {
			var id uint
			if _, err := fmt.Sscan(v, &id); err != nil || id == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "unit_id invalide")
			}
			dbq = dbq.Where("unit_id = ?", id)
		}
		if c.Query("active") == "true" {
			dbq = dbq.Where("active = ?", true)
		}

		var contracts []models.Contract
		if err := dbq.Order("start_date DESC").Find(&contracts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Liste des baux impossible")
		}

		resp := make([]ContractResponse, 0, len(contracts))
		for i := range contracts {
			resp = append(resp, toContractResponse(&contracts[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/contracts/:id/terminate
// Clôture le bail et libère le lot.
func TerminateContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var ct models.Contract
		if err := database.DB.Preload("Tenant").Preload("Unit").First(&ct, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bail introuvable")
		}

		if !ct.Active {
			return fiber.NewError(fiber.StatusConflict, "Ce bail est déjà clôturé")
		}

		ct.Active = false
		if err := database.DB.Save(&ct).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Clôture du bail impossible")
		}

		database.DB.Model(&models.Unit{}).Where("id = ?", ct.UnitID).Update("status", models.UnitStatusVacant)

		return c.JSON(toContractResponse(&ct))
	}
}
