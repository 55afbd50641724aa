package building

import (
	"fmt"
	"strings"

	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateBuildingRequest struct {
	LandlordID uint   `json:"landlord_id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
}

type UpdateBuildingRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`
}

type BuildingResponse struct {
	ID            uint   `json:"id"`
	LandlordID    uint   `json:"landlord_id"`
	LandlordName  string `json:"landlord_name"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	Active        bool   `json:"active"`
	UnitCount     int    `json:"unit_count"`
	OccupiedUnits int    `json:"occupied_units"`
}

func toResponse(b *models.Building) BuildingResponse {
	occupied := 0
	for _, u := range b.Units {
		if u.Status == models.UnitStatusOccupied {
			occupied++
		}
	}
	return BuildingResponse{
		ID:            b.ID,
		LandlordID:    b.LandlordID,
		LandlordName:  b.Landlord.Name,
		Name:          b.Name,
		Address:       b.Address,
		Active:        b.Active,
		UnitCount:     len(b.Units),
		OccupiedUnits: occupied,
	}
}

// POST /api/admin/buildings
func CreateBuildingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBuildingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.LandlordID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nom et bailleur obligatoires")
		}

		var l models.Landlord
		if err := database.DB.First(&l, "id = ?", body.LandlordID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bailleur introuvable")
		}

		b := models.Building{
			LandlordID: body.LandlordID,
			Name:       body.Name,
			Address:    strings.TrimSpace(body.Address),
			Active:     true,
		}

		if err := database.DB.Create(&b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création de l'immeuble impossible")
		}

		b.Landlord = l
		return c.Status(fiber.StatusCreated).JSON(toResponse(&b))
	}
}

// GET /api/buildings?landlord_id=1&active=true
func ListBuildingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Building{}).Preload("Landlord").Preload("Units")

		if lidStr := c.Query("landlord_id"); lidStr != "" {
			var lid uint
			if _, err := fmt.Sscan(lidStr, &lid); err != nil || lid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "landlord_id invalide")
			}
			dbq = dbq.Where("landlord_id = ?", lid)
		}
		if c.Query("active") == "true" {
			dbq = dbq.Where("active = ?", true)
		}

		var buildings []models.Building
		if err := dbq.Order("name ASC").Find(&buildings).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Liste des immeubles impossible")
		}

		resp := make([]BuildingResponse, 0, len(buildings))
		for i := range buildings {
			resp = append(resp, toResponse(&buildings[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/buildings/:id
func GetBuildingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}

		var b models.Building
		if err := database.DB.Preload("Landlord").Preload("Units").First(&b, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Immeuble introuvable")
		}

		return c.JSON(toResponse(&b))
	}
}

// PUT /api/admin/buildings/:id
func UpdateBuildingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}

		var b models.Building
		if err := database.DB.Preload("Landlord").Preload("Units").First(&b, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Immeuble introuvable")
		}

		var body UpdateBuildingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Le nom ne peut pas être vide")
			}
			b.Name = name
		}
		if body.Address != nil {
			b.Address = strings.TrimSpace(*body.Address)
		}
		if body.Active != nil {
			b.Active = *body.Active
		}

		if err := database.DB.Save(&b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour de l'immeuble impossible")
		}

		return c.JSON(toResponse(&b))
	}
}

// DELETE /api/admin/buildings/:id
func DeleteBuildingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}

		var count int64
		database.DB.Model(&models.Unit{}).Where("building_id = ?", id).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Cet immeuble contient encore des lots")
		}

		if err := database.DB.Delete(&models.Building{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression de l'immeuble impossible")
		}

		return c.JSON(fiber.Map{"message": "Immeuble supprimé"})
	}
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params(name), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID invalide")
	}
	return id, nil
}
