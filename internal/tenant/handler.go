package tenant

import (
	"fmt"
	"strings"

	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateTenantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type UpdateTenantRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type TenantResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func toResponse(t *models.Tenant) TenantResponse {
	return TenantResponse{ID: t.ID, Name: t.Name, Email: t.Email, Phone: t.Phone}
}

// POST /api/tenants
func CreateTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTenantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Le nom du locataire est obligatoire")
		}

		t := models.Tenant{
			Name:  body.Name,
			Email: strings.TrimSpace(strings.ToLower(body.Email)),
			Phone: strings.TrimSpace(body.Phone),
		}

		if err := database.DB.Create(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création du locataire impossible")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&t))
	}
}

// GET /api/tenants?q=dupont
func ListTenantsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Tenant{})

		if q := strings.TrimSpace(c.Query("q")); q != "" {
			dbq = dbq.Where("name ILIKE ?", "%"+q+"%")
		}

		var tenants []models.Tenant
		if err := dbq.Order("name ASC").Find(&tenants).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Liste des locataires impossible")
		}

		resp := make([]TenantResponse, 0, len(tenants))
		for i := range tenants {
			resp = append(resp, toResponse(&tenants[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/tenants/:id
func GetTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var t models.Tenant
		if err := database.DB.First(&t, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Locataire introuvable")
		}

		return c.JSON(toResponse(&t))
	}
}

// PUT /api/tenants/:id
func UpdateTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var t models.Tenant
		if err := database.DB.First(&t, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Locataire introuvable")
		}

		var body UpdateTenantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Le nom ne peut pas être vide")
			}
			t.Name = name
		}
		if body.Email != nil {
			t.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.Phone != nil {
			t.Phone = strings.TrimSpace(*body.Phone)
		}

		if err := database.DB.Save(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du locataire impossible")
		}

		return c.JSON(toResponse(&t))
	}
}

// DELETE /api/tenants/:id
// Refusé tant qu'un bail référence encore le locataire.
func DeleteTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var t models.Tenant
		if err := database.DB.First(&t, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Locataire introuvable")
		}

		var count int64
		database.DB.Model(&models.Contract{}).Where("tenant_id = ?", id).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Des baux référencent encore ce locataire")
		}

		if err := database.DB.Delete(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression du locataire impossible")
		}

		return c.JSON(fiber.Map{"message": "Locataire supprimé"})
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID invalide")
	}
	return id, nil
}
