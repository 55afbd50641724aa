package building

import (
	"strings"

	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateUnitRequest struct {
	Name     string  `json:"name"`
	BaseRent float64 `json:"base_rent"`
}

type UpdateUnitRequest struct {
	Name     *string            `json:"name"`
	BaseRent *float64           `json:"base_rent"`
	Status   *models.UnitStatus `json:"status"`
}

type UnitResponse struct {
	ID         uint              `json:"id"`
	BuildingID uint              `json:"building_id"`
	Name       string            `json:"name"`
	BaseRent   float64           `json:"base_rent"`
	Status     models.UnitStatus `json:"status"`
}

func toUnitResponse(u *models.Unit) UnitResponse {
	return UnitResponse{
		ID:         u.ID,
		BuildingID: u.BuildingID,
		Name:       u.Name,
		BaseRent:   u.BaseRent,
		Status:     u.Status,
	}
}

func validUnitStatus(s models.UnitStatus) bool {
	switch s {
	case models.UnitStatusVacant, models.UnitStatusOccupied, models.UnitStatusMaintenance:
		return true
	}
	return false
}

// POST /api/admin/buildings/:id/units
func CreateUnitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		buildingID, err := parseID(c, "id")
		if err != nil {
			return err
		}

		var b models.Building
		if err := database.DB.First(&b, "id = ?", buildingID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Immeuble introuvable")
		}

		var body CreateUnitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Le nom du lot est obligatoire")
		}
		if body.BaseRent < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Loyer de base invalide")
		}

		u := models.Unit{
			BuildingID: buildingID,
			Name:       body.Name,
			BaseRent:   body.BaseRent,
			Status:     models.UnitStatusVacant,
		}

		if err := database.DB.Create(&u).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création du lot impossible")
		}

		return c.Status(fiber.StatusCreated).JSON(toUnitResponse(&u))
	}
}

// GET /api/buildings/:id/units
func ListUnitsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		buildingID, err := parseID(c, "id")
		if err != nil {
			return err
		}

		var units []models.Unit
		if err := database.DB.Where("building_id = ?", buildingID).Order("name ASC").Find(&units).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Liste des lots impossible")
		}

		resp := make([]UnitResponse, 0, len(units))
		for i := range units {
			resp = append(resp, toUnitResponse(&units[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/admin/units/:id
func UpdateUnitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}

		var u models.Unit
		if err := database.DB.First(&u, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Lot introuvable")
		}

		var body UpdateUnitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Le nom ne peut pas être vide")
			}
			u.Name = name
		}
		if body.BaseRent != nil {
			if *body.BaseRent < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Loyer de base invalide")
			}
			u.BaseRent = *body.BaseRent
		}
		if body.Status != nil {
			if !validUnitStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "Statut invalide (vacant/occupied/maintenance)")
			}
			u.Status = *body.Status
		}

		if err := database.DB.Save(&u).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du lot impossible")
		}

		return c.JSON(toUnitResponse(&u))
	}
}

// DELETE /api/admin/units/:id
func DeleteUnitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}

		var count int64
		database.DB.Model(&models.Contract{}).Where("unit_id = ? AND active = ?", id, true).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Un bail actif existe sur ce lot")
		}

		if err := database.DB.Delete(&models.Unit{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression du lot impossible")
		}

		return c.JSON(fiber.Map{"message": "Lot supprimé"})
	}
}
