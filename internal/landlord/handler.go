package landlord

import (
	"fmt"
	"strings"

	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateLandlordRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	CommissionRate float64 `json:"commission_rate"`
}

type UpdateLandlordRequest struct {
	Name           *string  `json:"name"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	CommissionRate *float64 `json:"commission_rate"`
	Active         *bool    `json:"active"`
}

type LandlordResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	CommissionRate float64 `json:"commission_rate"`
	Active         bool    `json:"active"`
	BuildingCount  int     `json:"building_count"`
}

func toResponse(l *models.Landlord) LandlordResponse {
	return LandlordResponse{
		ID:             l.ID,
		Name:           l.Name,
		Email:          l.Email,
		Phone:          l.Phone,
		CommissionRate: l.CommissionRate,
		Active:         l.Active,
		BuildingCount:  len(l.Buildings),
	}
}

// POST /api/admin/landlords
func CreateLandlordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateLandlordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Le nom du bailleur est obligatoire")
		}
		if body.CommissionRate < 0 || body.CommissionRate > 100 {
			return fiber.NewError(fiber.StatusBadRequest, "Taux de commission invalide (0-100)")
		}

		l := models.Landlord{
			Name:           body.Name,
			Email:          strings.TrimSpace(strings.ToLower(body.Email)),
			Phone:          strings.TrimSpace(body.Phone),
			CommissionRate: body.CommissionRate,
			Active:         true,
		}

		if err := database.DB.Create(&l).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création du bailleur impossible")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&l))
	}
}

// GET /api/landlords?active=true
func ListLandlordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Landlord{}).Preload("Buildings")

		if c.Query("active") == "true" {
			dbq = dbq.Where("active = ?", true)
		}

		var landlords []models.Landlord
		if err := dbq.Order("name ASC").Find(&landlords).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Liste des bailleurs impossible")
		}

		resp := make([]LandlordResponse, 0, len(landlords))
		for i := range landlords {
			resp = append(resp, toResponse(&landlords[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/landlords/:id
func GetLandlordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var l models.Landlord
		if err := database.DB.Preload("Buildings").First(&l, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bailleur introuvable")
		}

		return c.JSON(toResponse(&l))
	}
}

// PUT /api/admin/landlords/:id
func UpdateLandlordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var l models.Landlord
		if err := database.DB.First(&l, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bailleur introuvable")
		}

		var body UpdateLandlordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Le nom ne peut pas être vide")
			}
			l.Name = name
		}
		if body.Email != nil {
			l.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.Phone != nil {
			l.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.CommissionRate != nil {
			if *body.CommissionRate < 0 || *body.CommissionRate > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "Taux de commission invalide (0-100)")
			}
			// Le nouveau taux ne s'applique qu'aux encaissements futurs :
			// la répartition des paiements existants reste figée.
			l.CommissionRate = *body.CommissionRate
		}
		if body.Active != nil {
			l.Active = *body.Active
		}

		if err := database.DB.Save(&l).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du bailleur impossible")
		}

		return c.JSON(toResponse(&l))
	}
}

// DELETE /api/admin/landlords/:id
func DeleteLandlordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var count int64
		database.DB.Model(&models.Building{}).Where("landlord_id = ?", id).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Ce bailleur possède encore des immeubles")
		}

		if err := database.DB.Delete(&models.Landlord{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression du bailleur impossible")
		}

		return c.JSON(fiber.Map{"message": "Bailleur supprimé"})
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID invalide")
	}
	return id, nil
}
