package expense

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

type ExpenseCategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CreateExpenseCategoryRequest struct {
	Name string `json:"name"`
}

type UpdateExpenseCategoryRequest struct {
	Name *string `json:"name"`
}

type CreateExpenseRequest struct {
	Date        string  `json:"date"` // "2025-03-09"
	CategoryID  uint    `json:"category_id"`
	BuildingID  *uint   `json:"building_id"` // optionnel : charge rattachée à un immeuble
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type ExpenseResponse struct {
	ID          uint    `json:"id"`
	CategoryID  uint    `json:"category_id"`
	Category    string  `json:"category"`
	BuildingID  *uint   `json:"building_id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type MonthlyExpenseSummaryItem struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Total        float64 `json:"total"`
}

type MonthlyExpenseSummaryResponse struct {
	Year       int                         `json:"year"`
	Month      int                         `json:"month"`
	Items      []MonthlyExpenseSummaryItem `json:"items"`
	GrandTotal float64                     `json:"grand_total"`
}

// -------------------------
// Catégories de charges
// -------------------------

// POST /api/admin/expense-categories
func CreateExpenseCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExpenseCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Le nom de la catégorie est obligatoire")
		}

		cat := models.ExpenseCategory{Name: body.Name}
		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Cette catégorie existe déjà")
		}

		return c.Status(fiber.StatusCreated).JSON(ExpenseCategoryResponse{ID: cat.ID, Name: cat.Name})
	}
}

// GET /api/expense-categories
func ListExpenseCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cats []models.ExpenseCategory
		if err := database.DB.Order("name ASC").Find(&cats).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Liste des catégories impossible")
		}

		resp := make([]ExpenseCategoryResponse, 0, len(cats))
		for _, cat := range cats {
			resp = append(resp, ExpenseCategoryResponse{ID: cat.ID, Name: cat.Name})
		}
		return c.JSON(resp)
	}
}

// PUT /api/admin/expense-categories/:id
func UpdateExpenseCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uint
		if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID invalide")
		}

		var cat models.ExpenseCategory
		if err := database.DB.First(&cat, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Catégorie introuvable")
		}

		var body UpdateExpenseCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Le nom ne peut pas être vide")
			}
			cat.Name = name
		}

		if err := database.DB.Save(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour de la catégorie impossible")
		}

		return c.JSON(ExpenseCategoryResponse{ID: cat.ID, Name: cat.Name})
	}
}

// DELETE /api/admin/expense-categories/:id
func DeleteExpenseCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uint
		if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID invalide")
		}

		var count int64
		database.DB.Model(&models.Expense{}).Where("category_id = ?", id).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Des charges utilisent encore cette catégorie")
		}

		if err := database.DB.Delete(&models.ExpenseCategory{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression de la catégorie impossible")
		}

		return c.JSON(fiber.Map{"message": "Catégorie supprimée"})
	}
}

// -------------------------
// Charges
// -------------------------

// POST /api/expenses
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.CategoryID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "category_id obligatoire")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Montant invalide")
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date invalide (AAAA-MM-JJ)")
		}

		var cat models.ExpenseCategory
		if err := database.DB.First(&cat, "id = ?", body.CategoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Catégorie introuvable")
		}

		if body.BuildingID != nil {
			var b models.Building
			if err := database.DB.First(&b, "id = ?", *body.BuildingID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Immeuble introuvable")
			}
		}

		exp := models.Expense{
			CategoryID:  body.CategoryID,
			BuildingID:  body.BuildingID,
			Date:        date,
			Amount:      body.Amount,
			Description: strings.TrimSpace(body.Description),
		}

		if err := database.DB.Create(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Enregistrement de la charge impossible")
		}

		userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
		var user models.User
		database.DB.First(&user, "id = ?", userID)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    user.Name,
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Charge %s %.2f", cat.Name, exp.Amount),
			After:       exp,
		})

		return c.Status(fiber.StatusCreated).JSON(ExpenseResponse{
			ID:          exp.ID,
			CategoryID:  exp.CategoryID,
			Category:    cat.Name,
			BuildingID:  exp.BuildingID,
			Date:        exp.Date.Format("2006-01-02"),
			Amount:      exp.Amount,
			Description: exp.Description,
		})
	}
}

// GET /api/expenses?year=2025&month=3&building_id=1
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Expense{}).Preload("Category")

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

		if v := c.Query("building_id"); v != "" {
			var id uint
			if _, err := fmt.Sscan(v, &id); err != nil || id == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "building_id invalide")
			}
			dbq = dbq.Where("building_id = ?", id)
		}

		var expenses []models.Expense
		if err := dbq.Order("date DESC, id DESC").Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Liste des charges impossible")
		}

		resp := make([]ExpenseResponse, 0, len(expenses))
		for _, exp := range expenses {
			resp = append(resp, ExpenseResponse{
				ID:          exp.ID,
				CategoryID:  exp.CategoryID,
				Category:    exp.Category.Name,
				BuildingID:  exp.BuildingID,
				Date:        exp.Date.Format("2006-01-02"),
				Amount:      exp.Amount,
				Description: exp.Description,
			})
		}
		return c.JSON(resp)
	}
}

// GET /api/expenses/summary/monthly?year=2025&month=3
func MonthlyExpenseSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		yearStr := c.Query("year")
		monthStr := c.Query("month")
		if yearStr == "" || monthStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "year et month obligatoires")
		}

		var year, month int
		if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "year invalide")
		}
		if _, err := fmt.Sscan(monthStr, &month); err != nil || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "month invalide")
		}

		monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, 0)

		type expRow struct {
			CategoryID uint    `gorm:"column:category_id"`
			Total      float64 `gorm:"column:total"`
		}
		var expRows []expRow

		if err := database.DB.
			Model(&models.Expense{}).
			Select("category_id, SUM(amount) as total").
			Where("date >= ? AND date < ?", monthStart, monthEnd).
			Group("category_id").
			Scan(&expRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Impossible de charger les données")
		}

		catIDs := make([]uint, 0, len(expRows))
		for _, r := range expRows {
			catIDs = append(catIDs, r.CategoryID)
		}

		catMap := make(map[uint]string)
		if len(catIDs) > 0 {
			var cats []models.ExpenseCategory
			if err := database.DB.Where("id IN ?", catIDs).Find(&cats).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Impossible de charger les données")
			}
			for _, cat := range cats {
				catMap[cat.ID] = cat.Name
			}
		}

		resp := MonthlyExpenseSummaryResponse{
			Year:  year,
			Month: month,
			Items: make([]MonthlyExpenseSummaryItem, 0, len(expRows)),
		}
		for _, r := range expRows {
			resp.Items = append(resp.Items, MonthlyExpenseSummaryItem{
				CategoryID:   r.CategoryID,
				CategoryName: catMap[r.CategoryID],
				Total:        r.Total,
			})
			resp.GrandTotal += r.Total
		}

		return c.JSON(resp)
	}
}
