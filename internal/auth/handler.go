package auth

import (
	"strings"

	"gestimmo-backend/internal/config"
	"gestimmo-backend/internal/database"
	"gestimmo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func RegisterAdminHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Email == "" || body.Password == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nom, email et mot de passe obligatoires")
		}

		// Un seul admin initial, les suivants sont créés par lui
		var count int64
		database.DB.Model(&models.User{}).
			Where("role = ?", models.RoleAdmin).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "Un admin existe déjà")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hash du mot de passe impossible")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création de l'utilisateur impossible")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		})
	}
}

type CreateUserRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

// POST /api/admin/users
// Création d'un gestionnaire (ou d'un autre admin).
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Email == "" || body.Password == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nom, email et mot de passe obligatoires")
		}
		if body.Role != models.RoleAdmin && body.Role != models.RoleGestionnaire {
			return fiber.NewError(fiber.StatusBadRequest, "Rôle invalide (admin ou gestionnaire)")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hash du mot de passe impossible")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         body.Role,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Email déjà utilisé")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		})
	}
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email ou mot de passe incorrect")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email ou mot de passe incorrect")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Génération du token impossible")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)
		userID, ok := userIDVal.(uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Utilisateur introuvable")
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Utilisateur introuvable")
		}

		return c.JSON(fiber.Map{
			"user_id": user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"role":    user.Role,
		})
	}
}
